package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rasd-app/rasd-api/internal/dto"
	"github.com/rasd-app/rasd-api/internal/models"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
	"github.com/rasd-app/rasd-api/pkg/export"
)

type readinessProvider interface {
	ClassReadiness(ctx context.Context, date time.Time) (*dto.ReadinessResponse, bool, error)
}

// ReportFile is one rendered export.
type ReportFile struct {
	Bytes       []byte
	Filename    string
	ContentType string
}

// ReportService renders readiness snapshots as downloadable documents.
type ReportService struct {
	readiness readinessProvider
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(readiness readinessProvider, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		readiness: readiness,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// ReadinessReport renders the readiness snapshot for date as csv or pdf.
func (s *ReportService) ReadinessReport(ctx context.Context, date time.Time, format string) (*ReportFile, error) {
	summary, _, err := s.readiness.ClassReadiness(ctx, date)
	if err != nil {
		return nil, err
	}

	dataset := readinessDataset(summary)
	dateKey := models.DateKey(date)

	switch strings.ToLower(format) {
	case "csv":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ReportFile{
			Bytes:       payload,
			Filename:    fmt.Sprintf("readiness-%s.csv", dateKey),
			ContentType: "text/csv",
		}, nil
	case "", "pdf":
		payload, err := s.pdf.Render(dataset, fmt.Sprintf("Class readiness %s", dateKey))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ReportFile{
			Bytes:       payload,
			Filename:    fmt.Sprintf("readiness-%s.pdf", dateKey),
			ContentType: "application/pdf",
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be pdf or csv")
	}
}

func readinessDataset(summary *dto.ReadinessResponse) export.Dataset {
	dataset := export.Dataset{Headers: []string{"Class", "Progress", "Total", "Ready", "Teachers"}}
	for _, class := range summary.Classes {
		names := make([]string, 0, len(class.Teachers))
		for _, teacher := range class.Teachers {
			name := teacher.Name
			if teacher.IsSubstituted {
				name = fmt.Sprintf("%s (covering for %s)", teacher.Name, teacher.OriginalTeacher)
			}
			names = append(names, name)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Class":    class.ClassName,
			"Progress": strconv.Itoa(class.Progress),
			"Total":    strconv.Itoa(class.Total),
			"Ready":    strconv.FormatBool(class.IsReady),
			"Teachers": strings.Join(names, "; "),
		})
	}
	return dataset
}
