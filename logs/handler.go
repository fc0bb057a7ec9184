package logs

import (
	"context"
	"log/slog"
)

// Handler annotates records with the run session carried by the context.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v := ctx.Value(SessionKey); v != nil {
		record.Add("logs.session", string(v.(Session)))
	}
	return h.Handler.Handle(ctx, record)
}
