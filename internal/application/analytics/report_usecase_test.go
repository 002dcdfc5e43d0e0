package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/inventario-docs/internal/application/analytics"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeReportRepo struct {
	snapshots []inventory.CountSnapshot
	summary   []inventory.DocumentSummaryRow
	gotFrom   *time.Time
	gotTo     *time.Time
}

func (r *fakeReportRepo) CompletedInventories(_ context.Context, _ string, from, to *time.Time) ([]inventory.CountSnapshot, error) {
	r.gotFrom, r.gotTo = from, to
	return r.snapshots, nil
}

func (r *fakeReportRepo) DocumentSummary(_ context.Context, _ string, _, _ *time.Time) ([]inventory.DocumentSummaryRow, error) {
	return r.summary, nil
}

type fakeOrgRepo struct{ orgs map[string]*entity.Organization }

func (r *fakeOrgRepo) CreateWithOwner(context.Context, *entity.Organization, *entity.Membership) error {
	return nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	return r.orgs[id], nil
}

func (r *fakeOrgRepo) Update(context.Context, *entity.Organization) error { return nil }

func (r *fakeOrgRepo) ListByUser(context.Context, string) ([]*entity.Organization, error) {
	return nil, nil
}

func (r *fakeOrgRepo) UserHasAccess(context.Context, string, string) (bool, error) { return true, nil }

func (r *fakeOrgRepo) MembershipRole(context.Context, string, string) (string, error) {
	return entity.RoleOwner, nil
}

type fakeRenderer struct {
	got *dto.DiscrepancyReportDTO
	err error
}

func (r *fakeRenderer) RenderDiscrepancies(_ context.Context, report *dto.DiscrepancyReportDTO) ([]byte, error) {
	r.got = report
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-fake"), nil
}

func line(productID, expected, actual string) inventory.CountLine {
	return inventory.CountLine{
		ProductID:   productID,
		ProductName: "Producto " + productID,
		Unit:        entity.DefaultUnit,
		Expected:    decimal.RequireFromString(expected),
		Actual:      decimal.RequireFromString(actual),
	}
}

func newReportUC(repo *fakeReportRepo, renderer *fakeRenderer) *analytics.ReportUseCase {
	orgs := &fakeOrgRepo{orgs: map[string]*entity.Organization{
		"org-1": {ID: "org-1", Name: "Almacenes Andinos"},
	}}
	return analytics.NewReportUseCase(repo, orgs, 0, zerolog.Nop(), analytics.Exporter{
		Format:      analytics.FormatPDF,
		ContentType: "application/pdf",
		Renderer:    renderer,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestDiscrepancies_EjemploBasico(t *testing.T) {
	repo := &fakeReportRepo{snapshots: []inventory.CountSnapshot{{
		DocumentID: "d1", Number: "INV-2610-0001", CreatedAt: time.Now(),
		Lines: []inventory.CountLine{line("a", "10", "8"), line("b", "5", "5")},
	}}}
	uc := newReportUC(repo, &fakeRenderer{})

	out, err := uc.Discrepancies(context.Background(), "org-1", dto.ReportPeriod{})
	require.NoError(t, err)
	assert.Equal(t, "Almacenes Andinos", out.OrganizationName)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, 1, out.TotalRows)
	assert.True(t, out.Rows[0].Difference.Equal(decimal.NewFromInt(-2)))
	assert.True(t, out.Rows[0].AbsoluteDifference.Equal(decimal.NewFromInt(2)))
}

func TestStatistics_TasaCincuenta(t *testing.T) {
	repo := &fakeReportRepo{snapshots: []inventory.CountSnapshot{{
		DocumentID: "d1", CreatedAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Lines: []inventory.CountLine{line("a", "10", "8"), line("b", "5", "5")},
	}}}
	uc := newReportUC(repo, &fakeRenderer{})

	out, err := uc.Statistics(context.Background(), "org-1", dto.ReportPeriod{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalItemsWithDiscrepancies)
	assert.Equal(t, "50.00", out.AverageDiscrepancyRate.StringFixed(2))
	require.Len(t, out.Monthly, 1)
	assert.Equal(t, "2026-09", out.Monthly[0].Period)
}

func TestReportes_OrganizacionNoExiste(t *testing.T) {
	uc := newReportUC(&fakeReportRepo{}, &fakeRenderer{})
	ctx := context.Background()

	_, err := uc.Discrepancies(ctx, "otra", dto.ReportPeriod{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Statistics(ctx, "otra", dto.ReportPeriod{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.MostScanned(ctx, "otra", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.DocumentSummary(ctx, "otra", dto.ReportPeriod{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportes_PeriodoInvertido(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := newReportUC(repo, &fakeRenderer{})
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)

	_, err := uc.Discrepancies(context.Background(), "org-1", dto.ReportPeriod{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportes_PeriodoSePropagaAlRepositorio(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := newReportUC(repo, &fakeRenderer{})
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	_, err := uc.Statistics(context.Background(), "org-1", dto.ReportPeriod{From: &from, To: &to})
	require.NoError(t, err)
	require.NotNil(t, repo.gotFrom)
	require.NotNil(t, repo.gotTo)
	assert.True(t, repo.gotFrom.Equal(from))
	assert.True(t, repo.gotTo.Equal(to))
}

func TestMostScanned_TopPorDefectoYMaximo(t *testing.T) {
	var lines []inventory.CountLine
	for i := 0; i < 150; i++ {
		lines = append(lines, line(string(rune('a'+i%26))+string(rune('a'+i/26)), "1", "1"))
	}
	repo := &fakeReportRepo{snapshots: []inventory.CountSnapshot{{DocumentID: "d1", CreatedAt: time.Now(), Lines: lines}}}
	uc := newReportUC(repo, &fakeRenderer{})
	ctx := context.Background()

	out, err := uc.MostScanned(ctx, "org-1", 0)
	require.NoError(t, err)
	assert.Equal(t, inventory.DefaultTopProducts, out.Top)
	assert.Len(t, out.Products, inventory.DefaultTopProducts)

	out, err = uc.MostScanned(ctx, "org-1", 500)
	require.NoError(t, err)
	assert.Equal(t, inventory.MaxTopProducts, out.Top)
	assert.Len(t, out.Products, inventory.MaxTopProducts)
}

func TestDocumentSummary_Totales(t *testing.T) {
	now := time.Now()
	repo := &fakeReportRepo{summary: []inventory.DocumentSummaryRow{
		{Type: string(entity.DocumentTypeInventory), Status: entity.DocumentStatusCompleted, Count: 3, LastCreatedAt: now},
		{Type: string(entity.DocumentTypeReceipt), Status: entity.DocumentStatusDraft, Count: 2, LastCreatedAt: now},
	}}
	uc := newReportUC(repo, &fakeRenderer{})

	out, err := uc.DocumentSummary(context.Background(), "org-1", dto.ReportPeriod{})
	require.NoError(t, err)
	assert.Equal(t, 5, out.TotalDocuments)
	assert.Len(t, out.Rows, 2)
}

func TestExportDiscrepancies(t *testing.T) {
	repo := &fakeReportRepo{snapshots: []inventory.CountSnapshot{{
		DocumentID: "d1", CreatedAt: time.Now(),
		Lines: []inventory.CountLine{line("a", "10", "8")},
	}}}
	renderer := &fakeRenderer{}
	uc := newReportUC(repo, renderer)
	ctx := context.Background()

	file, err := uc.ExportDiscrepancies(ctx, "org-1", dto.ReportPeriod{}, analytics.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Contains(t, file.Filename, ".pdf")
	assert.NotEmpty(t, file.Content)
	require.NotNil(t, renderer.got)
	assert.Len(t, renderer.got.Rows, 1)

	_, err = uc.ExportDiscrepancies(ctx, "org-1", dto.ReportPeriod{}, "csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	renderer.err = errors.New("sin fuentes")
	_, err = uc.ExportDiscrepancies(ctx, "org-1", dto.ReportPeriod{}, analytics.FormatPDF)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}
