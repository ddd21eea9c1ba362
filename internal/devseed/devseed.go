// Package devseed populates a development database with the stock route
// video catalog so the portal renders something useful on first boot.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/srl-logistica/rotaportal/internal/data"
	"github.com/srl-logistica/rotaportal/internal/domain/model"
	"github.com/srl-logistica/rotaportal/internal/service"
)

// Demo footage reused across the stock entries until real route recordings
// are uploaded per category.
const stockVideoURL = "https://assets.mixkit.co/videos/preview/mixkit-driving-on-a-highway-at-high-speed-4235-large.mp4"

// stockVideos is the development catalog: one entry per route category.
func stockVideos() []model.CreateVideoRequest {
	return []model.CreateVideoRequest{
		{
			Title:       "Orientações Gerais de Tráfego",
			Description: "Visão da cabine: Procedimentos de entrada e saída do terminal logístico.",
			VideoURL:    stockVideoURL,
			Thumbnail:   "https://images.unsplash.com/photo-1601584115197-04ecc0da31d7?auto=format&fit=crop&q=80&w=800",
			CategoryID:  model.VideoCategoryInicio,
			Duration:    "3:20",
		},
		{
			Title:       "Trajeto: Área de Perfis (Carregamento)",
			Description: "Rota interna para o galpão de perfis estruturais.",
			VideoURL:    stockVideoURL,
			Thumbnail:   "https://images.unsplash.com/photo-1586528116311-ad8dd3c8310d?auto=format&fit=crop&q=80&w=800",
			CategoryID:  model.VideoCategoryPerfil,
			Duration:    "5:10",
		},
		{
			Title:       "Rota: Setor Fio Máquina",
			Description: "Acesso prioritário para descarga de bobinas de fio máquina.",
			VideoURL:    stockVideoURL,
			Thumbnail:   "https://images.unsplash.com/photo-1519003722824-194d4455a60c?auto=format&fit=crop&q=80&w=800",
			CategoryID:  model.VideoCategoryFioMaquina,
			Duration:    "4:15",
		},
		{
			Title:       "Logística de Chapas Grossas",
			Description: "Percurso obrigatório para o pátio de chapas (Setor Sul).",
			VideoURL:    stockVideoURL,
			Thumbnail:   "https://images.unsplash.com/photo-1501700493788-fa1a4fc9fe62?auto=format&fit=crop&q=80&w=800",
			CategoryID:  model.VideoCategoryChapasGrossas,
			Duration:    "6:30",
		},
		{
			Title:       "Travessia Ferroviária Interna",
			Description: "Visão do trajeto sobre trilhos e sinalização ferroviária.",
			VideoURL:    stockVideoURL,
			Thumbnail:   "https://images.unsplash.com/photo-1474487056235-0d67385a828a?auto=format&fit=crop&q=80&w=800",
			CategoryID:  model.VideoCategoryFerrovia,
			Duration:    "2:50",
		},
		{
			Title:       "Transporte: Placa, Bloco e Tarugo",
			Description: "Acesso aos fornos e áreas de resfriamento PBT.",
			VideoURL:    stockVideoURL,
			Thumbnail:   "https://images.unsplash.com/photo-1533932252533-333e602264c7?auto=format&fit=crop&q=80&w=800",
			CategoryID:  model.VideoCategoryPlacaBlocoTarugo,
			Duration:    "8:20",
		},
	}
}

// Run seeds the stock catalog. Idempotent: an already-populated catalog is
// left untouched.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	videos := service.NewVideoService(service.VideoServiceOptions{
		Repo:   data.NewVideoRepo(db),
		Logger: logger,
	})

	existing, err := videos.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing catalog: %w", err)
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "catalog already populated; skipping seed", "videos", len(existing))
		return nil
	}

	seeded := 0
	for _, req := range stockVideos() {
		if _, createErr := videos.Create(ctx, req); createErr != nil {
			return fmt.Errorf("seed video %q: %w", req.Title, createErr)
		}
		seeded++
	}

	logger.InfoContext(ctx, "development catalog seeded", "videos", seeded)
	return nil
}
