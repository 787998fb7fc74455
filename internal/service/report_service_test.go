package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasd-app/rasd-api/internal/dto"
	"github.com/rasd-app/rasd-api/internal/models"
)

type readinessProviderStub struct {
	summary *dto.ReadinessResponse
	err     error
}

func (s readinessProviderStub) ClassReadiness(ctx context.Context, date time.Time) (*dto.ReadinessResponse, bool, error) {
	return s.summary, false, s.err
}

func readinessSummaryFixture() *dto.ReadinessResponse {
	return &dto.ReadinessResponse{
		Date: "2026-03-02",
		Classes: []models.ClassReadiness{
			{
				ClassName: "3A",
				Progress:  1,
				Total:     2,
				Teachers: []models.ClassTeacher{
					{Name: "Omar", IsSubstituted: true, OriginalTeacher: "Ali"},
					{Name: "Ali"},
					{Name: "Sara"},
				},
			},
		},
		TotalCount: 1,
	}
}

func TestReportServiceReadinessCSV(t *testing.T) {
	svc := NewReportService(readinessProviderStub{summary: readinessSummaryFixture()}, nil)

	report, err := svc.ReadinessReport(context.Background(), testMonday, "csv")
	require.NoError(t, err)
	assert.Equal(t, "readiness-2026-03-02.csv", report.Filename)
	assert.Equal(t, "text/csv", report.ContentType)

	body := string(report.Bytes)
	assert.True(t, strings.HasPrefix(body, "Class,Progress,Total,Ready,Teachers"))
	assert.Contains(t, body, "3A,1,2,false")
	assert.Contains(t, body, "Omar (covering for Ali)")
}

func TestReportServiceReadinessPDFDefault(t *testing.T) {
	svc := NewReportService(readinessProviderStub{summary: readinessSummaryFixture()}, nil)

	report, err := svc.ReadinessReport(context.Background(), testMonday, "")
	require.NoError(t, err)
	assert.Equal(t, "readiness-2026-03-02.pdf", report.Filename)
	assert.Equal(t, "application/pdf", report.ContentType)
	assert.NotEmpty(t, report.Bytes)
}

func TestReportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewReportService(readinessProviderStub{summary: readinessSummaryFixture()}, nil)

	_, err := svc.ReadinessReport(context.Background(), testMonday, "xlsx")
	require.Error(t, err)
}
