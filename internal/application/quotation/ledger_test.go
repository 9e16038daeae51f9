package quotation_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Quotation-api/internal/application/quotation"
	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/internal/infrastructure/memory"
)

type stubRenderer struct {
	got *entity.Quotation
}

func (r *stubRenderer) Render(q *entity.Quotation) ([]byte, error) {
	r.got = q
	return []byte("%PDF-stub"), nil
}

func newLedger(renderer quotation.Renderer) *quotation.Ledger {
	store := memory.NewStore()
	return quotation.NewLedger(memory.NewQuotationRepository(store), memory.NewTxRunner(store), renderer)
}

func decode(t *testing.T, body string) *entity.Quotation {
	t.Helper()
	var q entity.Quotation
	require.NoError(t, json.Unmarshal([]byte(body), &q))
	return &q
}

func TestLedger_CreateAndGet(t *testing.T) {
	l := newLedger(nil)
	ctx := context.Background()

	created, err := l.Create(ctx, decode(t, `{
		"id": " AIMP-100 ",
		"quotationSegment": "Air Import",
		"createdBy": "ravi",
		"originCharges": [{"id": 1, "charges": "Pickup", "amount": "120"}],
		"shipperRef": "SR-1"
	}`))
	require.NoError(t, err)
	assert.Equal(t, "AIMP-100", created.ID)
	assert.NotEmpty(t, created.InternalID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "USD", created.OriginCharges[0].Currency)

	got, err := l.GetByID(ctx, "AIMP-100")
	require.NoError(t, err)
	assert.JSONEq(t, `"SR-1"`, string(got.Extra["shipperRef"]))

	_, err = l.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_CreateValidation(t *testing.T) {
	l := newLedger(nil)
	ctx := context.Background()

	_, err := l.Create(ctx, decode(t, `{"quotationSegment":"Sea"}`))
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = l.Create(ctx, decode(t, `{"id":"  ","quotationSegment":"Sea"}`))
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = l.Create(ctx, decode(t, `{"id":"Q","quotationSegment":"Sea","freightCharges":[{"charges":"BAF"}]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = l.Create(ctx, decode(t, `{"id":"Q","quotationSegment":"Sea"}`))
	require.NoError(t, err)
	_, err = l.Create(ctx, decode(t, `{"id":"Q","quotationSegment":"Air"}`))
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestLedger_ConcurrentCreateSameID(t *testing.T) {
	l := newLedger(nil)
	ctx := context.Background()

	const workers = 12
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		saved, dupes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Create(ctx, &entity.Quotation{ID: "SEFCL-1", QuotationSegment: "Sea Export FCL"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				saved++
			} else if errors.Is(err, domain.ErrDuplicateID) {
				dupes++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, saved)
	assert.Equal(t, workers-1, dupes)
}

func TestLedger_ListFilters(t *testing.T) {
	l := newLedger(nil)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, q := range []*entity.Quotation{
		{ID: "A", QuotationSegment: "Sea", CreatedBy: "ravi"},
		{ID: "B", QuotationSegment: "Air", CreatedBy: "ravi"},
		{ID: "C", QuotationSegment: "Sea", CreatedBy: "vikram"},
	} {
		at := base.Add(time.Duration(i) * time.Hour)
		quotation.SetClock(l, at)
		_, err := l.Create(ctx, q)
		require.NoError(t, err)
	}

	all, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "C", all[0].ID, "newest first")

	sea, err := l.ListBySegment(ctx, "Sea")
	require.NoError(t, err)
	assert.Len(t, sea, 2)

	ravi, err := l.ListByCreator(ctx, "ravi")
	require.NoError(t, err)
	assert.Len(t, ravi, 2)

	none, err := l.ListBySegment(ctx, "Rail")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestLedger_UpdateMergesTopLevel(t *testing.T) {
	l := newLedger(nil)
	ctx := context.Background()
	created, err := l.Create(ctx, decode(t, `{"id":"Q-1","quotationSegment":"Sea","pol":"Mundra","pod":"Jebel Ali","note":"a"}`))
	require.NoError(t, err)

	updated, err := l.Update(ctx, "Q-1", map[string]json.RawMessage{
		"pod":     json.RawMessage(`"Dammam"`),
		"note":    json.RawMessage(`"b"`),
		"remarks": json.RawMessage(`"Valid 7 days"`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dammam", updated.POD)
	assert.Equal(t, "Mundra", updated.POL)
	assert.Equal(t, "Valid 7 days", updated.Remarks)
	assert.JSONEq(t, `"b"`, string(updated.Extra["note"]))
	assert.Equal(t, created.InternalID, updated.InternalID)

	got, err := l.GetByID(ctx, "Q-1")
	require.NoError(t, err)
	assert.Equal(t, "Dammam", got.POD)
}

func TestLedger_UpdateErrors(t *testing.T) {
	l := newLedger(nil)
	ctx := context.Background()
	_, err := l.Create(ctx, &entity.Quotation{ID: "Q-1", QuotationSegment: "Sea"})
	require.NoError(t, err)
	_, err = l.Create(ctx, &entity.Quotation{ID: "Q-2", QuotationSegment: "Sea"})
	require.NoError(t, err)

	_, err = l.Update(ctx, "missing", map[string]json.RawMessage{"pod": json.RawMessage(`"x"`)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = l.Update(ctx, "Q-1", map[string]json.RawMessage{"quotationSegment": json.RawMessage(`""`)})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = l.Update(ctx, "Q-1", map[string]json.RawMessage{"id": json.RawMessage(`"Q-2"`)})
	assert.ErrorIs(t, err, domain.ErrDuplicateID)

	renamed, err := l.Update(ctx, "Q-1", map[string]json.RawMessage{"id": json.RawMessage(`"Q-3"`)})
	require.NoError(t, err)
	assert.Equal(t, "Q-3", renamed.ID)
	_, err = l.GetByID(ctx, "Q-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_Delete(t *testing.T) {
	l := newLedger(nil)
	ctx := context.Background()
	_, err := l.Create(ctx, &entity.Quotation{ID: "Q-1", QuotationSegment: "Sea"})
	require.NoError(t, err)

	require.NoError(t, l.Delete(ctx, "Q-1"))
	assert.ErrorIs(t, l.Delete(ctx, "Q-1"), domain.ErrNotFound)
}

func TestLedger_RenderPDF(t *testing.T) {
	r := &stubRenderer{}
	l := newLedger(r)
	ctx := context.Background()
	_, err := l.Create(ctx, &entity.Quotation{ID: "Q-1", QuotationSegment: "Sea"})
	require.NoError(t, err)
	_, err = l.Create(ctx, &entity.Quotation{ID: "Q-2", QuotationSegment: "Sea", PDFFileName: "custom.pdf"})
	require.NoError(t, err)

	doc, name, err := l.RenderPDF(ctx, "Q-1")
	require.NoError(t, err)
	assert.Equal(t, "quotation_Q-1.pdf", name)
	assert.Equal(t, []byte("%PDF-stub"), doc)
	assert.Equal(t, "Q-1", r.got.ID)

	_, name, err = l.RenderPDF(ctx, "Q-2")
	require.NoError(t, err)
	assert.Equal(t, "custom.pdf", name)

	_, _, err = l.RenderPDF(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = newLedger(nil).RenderPDF(ctx, "Q-1")
	assert.ErrorIs(t, err, quotation.ErrRendererUnavailable)
}
