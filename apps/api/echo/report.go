package echoapi

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ArthurFreire0/dashboard-School/core"
	"github.com/ArthurFreire0/dashboard-School/core/report"
)

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, svc *report.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports")
	rg.POST("/university", api.ingestUniversity)
	rg.POST("/school", api.ingestSchool)
	rg.GET("/churn", api.churn)
}

// Handlers

func (api *reportApi) ingestUniversity(ctx echo.Context) error {
	filename, data, err := readUpload(ctx)
	if err != nil {
		return err
	}

	res, err := api.svc.IngestUniversity(ctx.Request().Context(), filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *reportApi) ingestSchool(ctx echo.Context) error {
	var data SchoolUploadRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SchoolUploadRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	filename, body, err := readUpload(ctx)
	if err != nil {
		return err
	}

	opts := report.SchoolOptions{TotalClasses: data.TotalClasses}
	res, err := api.svc.IngestSchool(ctx.Request().Context(), filename, body, opts)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *reportApi) churn(ctx echo.Context) error {
	assessments, err := api.svc.Churn(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying churn assessments")
	}
	return ctx.JSON(http.StatusOK, assessments)
}

// readUpload pulls the "file" multipart part into memory. Only CSV uploads
// are accepted.
func readUpload(ctx echo.Context) (string, []byte, error) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return "", nil, errMissingUpload
	}
	filename := core.CleanString(fh.Filename)
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return "", nil, core.NewValidationError(nil, core.FieldError{Field: "file", Error: "only .csv files are accepted"})
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, errors.Wrap(err, "opening upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, errors.Wrap(err, "reading upload")
	}
	return filename, data, nil
}

type SchoolUploadRequest struct {
	// TotalClasses overrides the yearly class count used to derive attendance
	// when the report card has no such column.
	TotalClasses float64 `json:"totalClasses" form:"totalClasses" validate:"omitempty,gt=0"`
}

func (sr *SchoolUploadRequest) Validate() error {
	return core.Validate.Struct(sr)
}
