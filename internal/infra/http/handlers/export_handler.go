package handlers

import (
	"encoding/csv"
	"net/http"

	"go.uber.org/zap"

	"github.com/xcarvalho/leadtrack/internal/infra/http/middleware"
	"github.com/xcarvalho/leadtrack/internal/usecase"
)

type ExportHandler struct {
	Store *usecase.LeadStore
	Log   *zap.Logger
}

func NewExportHandler(store *usecase.LeadStore, log *zap.Logger) *ExportHandler {
	return &ExportHandler{Store: store, Log: log}
}

// Export handles GET /api/export, streaming the collection as a CSV
// attachment. One row per lead, history excluded.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=leads_export.csv")

	cw := csv.NewWriter(w)
	if err := cw.Write(usecase.ExportColumns); err != nil {
		h.Log.Error("failed to write csv header", zap.Error(err))
		return
	}
	for row := range h.Store.ExportRows() {
		if err := cw.Write(row); err != nil {
			h.Log.Error("failed to write csv row", zap.Error(err))
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.Log.Error("failed to flush csv", zap.Error(err))
		return
	}

	middleware.RecordExport()
}
