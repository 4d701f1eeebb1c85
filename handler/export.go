package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"flux-web/internal/domain"
	"flux-web/internal/export"
	"flux-web/internal/usecase"
)

type exportData struct {
	title string
	table export.Table
	lines []string
}

// exportRoutes serve GET /export/:dataset?format=csv|report. Filters are the
// same query parameters the matching list route takes.
func (h *Handler) exportRoutes(r *gin.Engine) {
	r.GET("/export/:dataset", h.exportDataset)
}

func (h *Handler) exportDataset(c *gin.Context) {
	dataset := c.Param("dataset")
	data, err := h.loadExport(c, dataset)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	var contentType, ext string
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		err = export.CSV(&buf, data.table)
		contentType, ext = "text/csv; charset=utf-8", "csv"
	case "report":
		err = export.Report(&buf, data.title, data.lines)
		contentType, ext = "text/plain; charset=utf-8", "txt"
	default:
		h.fail(c, invalid("unsupported_export_format", nil))
		return
	}
	if err != nil {
		h.fail(c, &usecase.Error{Code: usecase.ErrorInternal, Reason: "export_render_error", Err: err})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_report.%s"`, dataset, ext))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *Handler) loadExport(c *gin.Context, dataset string) (exportData, error) {
	ctx := c.Request.Context()
	switch {
	case dataset == "expos" && h.svc.Expos != nil:
		expos, err := h.svc.Expos.List(ctx, expoFilter(c))
		if err != nil {
			return exportData{}, err
		}
		return exportData{title: "Expos Report", table: export.Expos(expos), lines: export.ExpoLines(expos)}, nil

	case dataset == "booths" && h.svc.Booths != nil:
		booths, err := h.svc.Booths.List(ctx, c.Query("expo_id"), usecase.BoothFilter{
			Size:   domain.BoothSize(c.Query("size")),
			Status: domain.BoothStatus(c.Query("status")),
			Search: c.Query("search"),
		})
		if err != nil {
			return exportData{}, err
		}
		return exportData{title: "Booths Report", table: export.Booths(booths), lines: export.BoothLines(booths)}, nil

	case dataset == "sessions" && h.svc.Sessions != nil:
		sessions, err := h.svc.Sessions.List(ctx, c.Query("expo_id"), sessionFilter(c))
		if err != nil {
			return exportData{}, err
		}
		return exportData{title: "Sessions Report", table: export.Sessions(sessions), lines: export.SessionLines(sessions)}, nil

	case dataset == "applications" && h.svc.Applications != nil:
		apps, err := h.svc.Applications.List(ctx, applicationFilter(c))
		if err != nil {
			return exportData{}, err
		}
		exhibitors, expos, err := h.applicationLookups(c)
		if err != nil {
			return exportData{}, err
		}
		return exportData{
			title: "Applications Report",
			table: export.Applications(apps, exhibitors, expos),
			lines: export.ApplicationLines(apps, exhibitors),
		}, nil

	case dataset == "analytics" && h.svc.Analytics != nil:
		out, err := h.svc.Analytics.Overview(ctx, expoFilter(c))
		if err != nil {
			return exportData{}, err
		}
		return exportData{title: "Analytics Report", table: export.Analytics(out.Expos), lines: export.AnalyticsLines(out.Expos)}, nil
	}
	return exportData{}, &usecase.Error{Code: usecase.ErrorNotFound, Reason: "unknown_export_dataset"}
}

// applicationLookups loads the exhibitor profiles and expos an application
// export joins against. Missing services leave the lookups empty.
func (h *Handler) applicationLookups(c *gin.Context) (map[string]domain.Profile, map[string]domain.Expo, error) {
	ctx := c.Request.Context()
	exhibitors := map[string]domain.Profile{}
	if h.svc.Profiles != nil {
		profiles, err := h.svc.Profiles.List(ctx, usecase.ProfileFilter{Role: domain.RoleExhibitor})
		if err != nil {
			return nil, nil, err
		}
		for _, p := range profiles {
			exhibitors[p.ID] = p
		}
	}
	expos := map[string]domain.Expo{}
	if h.svc.Expos != nil {
		list, err := h.svc.Expos.List(ctx, usecase.ExpoFilter{})
		if err != nil {
			return nil, nil, err
		}
		for _, e := range list {
			expos[e.ID] = e
		}
	}
	return exhibitors, expos, nil
}
