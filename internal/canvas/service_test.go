package canvas

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "business-canvas/internal/common/errors"
	"business-canvas/internal/common/logger"
	"business-canvas/internal/common/metrics"
	"business-canvas/internal/models"
	"business-canvas/internal/store"
	"business-canvas/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("canvas-%03d", n)
	}
}

func createTestService(t *testing.T, st store.Store) (*Service, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	cfg := &Config{
		Timeout: time.Second,
		Now:     clock.Now,
		NewID:   sequentialIDs(),
	}
	return NewService(cfg, nil, st, logger.NewTestLogger(t), nil), clock
}

// failingStore fails every call with err.
type failingStore struct {
	err error
}

func (f failingStore) Create(context.Context, *models.BusinessCanvas) error { return f.err }
func (f failingStore) Get(context.Context, string) (*models.BusinessCanvas, error) {
	return nil, f.err
}
func (f failingStore) List(context.Context) ([]*models.BusinessCanvas, error) { return nil, f.err }
func (f failingStore) Update(context.Context, string, store.UpdateFunc) (*models.BusinessCanvas, error) {
	return nil, f.err
}
func (f failingStore) Delete(context.Context, string) error { return f.err }
func (f failingStore) Len(context.Context) (int, error)     { return 0, f.err }
func (f failingStore) Ping(context.Context) error           { return f.err }

func errorCode(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	return stdErr.Code
}

// ==========================
// Generate / Get / List
// ==========================

func TestService_GenerateRoundTrip(t *testing.T) {
	svc, _ := createTestService(t, store.NewMemoryStore())
	ctx := context.Background()

	created, err := svc.Generate(ctx, GenerateRequest{Prompt: "20-30대 타겟 구독 서비스 앱"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("stored canvas differs (-generated +stored):\n%s", diff)
	}
	assert.Contains(t, got.CustomerSegments.Content, "20-30대 타겟 고객")
}

func TestService_GenerateCountsOnlyMatchedBlocks(t *testing.T) {
	svc, _ := createTestService(t, store.NewMemoryStore())
	count := func(field string) float64 {
		return testutil.ToFloat64(metrics.CanvasBlocksInferred.WithLabelValues(field))
	}
	fields := []string{
		registry.FieldKeyResources,
		registry.FieldCustomerRelationships,
		registry.FieldCostStructure,
		registry.FieldChannels,
	}
	before := make(map[string]float64, len(fields))
	for _, f := range fields {
		before[f] = count(f)
	}

	_, err := svc.Generate(context.Background(), GenerateRequest{Prompt: "오프라인 매장"})
	require.NoError(t, err)

	assert.Equal(t, before[registry.FieldChannels]+1, count(registry.FieldChannels))
	assert.Equal(t, before[registry.FieldKeyResources], count(registry.FieldKeyResources))
	assert.Equal(t, before[registry.FieldCustomerRelationships], count(registry.FieldCustomerRelationships))
	assert.Equal(t, before[registry.FieldCostStructure], count(registry.FieldCostStructure))
}

func TestService_GenerateName(t *testing.T) {
	tests := []struct {
		name     string
		reqName  string
		wantName func(now time.Time) string
	}{
		{
			name:    "explicit name wins",
			reqName: "My Startup",
			wantName: func(time.Time) string {
				return "My Startup"
			},
		},
		{
			name:    "empty name keeps default",
			reqName: "",
			wantName: func(now time.Time) string {
				return "Canvas " + now.Format("2006-01-02 15:04")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, clock := createTestService(t, store.NewMemoryStore())
			c, err := svc.Generate(context.Background(), GenerateRequest{Prompt: "앱", Name: tt.reqName})
			require.NoError(t, err)
			assert.Equal(t, tt.wantName(clock.Now()), c.Name)
			assert.Equal(t, "canvas-001", c.ID)
			assert.Equal(t, clock.Now(), c.CreatedAt)
			assert.Equal(t, c.CreatedAt, c.UpdatedAt)
		})
	}
}

func TestService_GenerateEmptyPrompt(t *testing.T) {
	svc, _ := createTestService(t, store.NewMemoryStore())
	c, err := svc.Generate(context.Background(), GenerateRequest{Prompt: ""})
	require.NoError(t, err)

	for _, def := range registry.Blocks() {
		block := c.Block(def.Field)
		assert.NotEmpty(t, block.Content, def.Field)
		assert.Equal(t, def.ID, block.ID)
	}
}

func TestService_ListOrder(t *testing.T) {
	svc, clock := createTestService(t, store.NewMemoryStore())
	ctx := context.Background()

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	var want []string
	for i := 0; i < 3; i++ {
		c, err := svc.Generate(ctx, GenerateRequest{Prompt: "web"})
		require.NoError(t, err)
		want = append(want, c.ID)
		clock.Advance(time.Minute)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(list))
	for _, c := range list {
		got = append(got, c.ID)
	}
	assert.Equal(t, want, got)
}

func TestService_MissingID(t *testing.T) {
	st := store.NewMemoryStore()
	svc, _ := createTestService(t, st)
	ctx := context.Background()

	_, err := svc.Generate(ctx, GenerateRequest{Prompt: "app"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Update(ctx, "missing", map[string]interface{}{"name": "X"})
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Update(ctx, "missing", map[string]interface{}{"name": 12.0})
	assert.True(t, apperrors.IsNotFound(err), "unknown id is reported before an invalid body")

	assert.True(t, apperrors.IsNotFound(svc.Delete(ctx, "missing")))

	_, err = svc.Duplicate(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))

	n, err := st.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// ==========================
// Update
// ==========================

func TestService_UpdateNameOnly(t *testing.T) {
	svc, clock := createTestService(t, store.NewMemoryStore())
	ctx := context.Background()

	before, err := svc.Generate(ctx, GenerateRequest{Prompt: "AI 구독 앱"})
	require.NoError(t, err)
	clock.Advance(time.Hour)

	after, err := svc.Update(ctx, before.ID, map[string]interface{}{"name": "X"})
	require.NoError(t, err)

	assert.Equal(t, "X", after.Name)
	assert.Equal(t, clock.Now(), after.UpdatedAt)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	if diff := cmp.Diff(before, after, cmpopts.IgnoreFields(models.BusinessCanvas{}, "Name", "UpdatedAt")); diff != "" {
		t.Errorf("update touched more than name (-before +after):\n%s", diff)
	}
}

func TestService_UpdateBlock(t *testing.T) {
	svc, _ := createTestService(t, store.NewMemoryStore())
	ctx := context.Background()

	before, err := svc.Generate(ctx, GenerateRequest{Prompt: "app"})
	require.NoError(t, err)

	after, err := svc.Update(ctx, before.ID, map[string]interface{}{
		"channels": map[string]interface{}{
			"id":          "hijacked",
			"title":       "hijacked",
			"placeholder": "hijacked",
			"content":     []interface{}{"직접 영업"},
		},
		"id":         "other-id",
		"created_at": "1999-01-01T00:00:00Z",
		"unknown":    true,
	})
	require.NoError(t, err)

	def := registry.MustLookup(registry.FieldChannels)
	assert.Equal(t, models.CanvasBlock{
		ID:          def.ID,
		Title:       def.Title,
		Content:     []string{"직접 영업"},
		Placeholder: def.Placeholder,
	}, after.Channels)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.KeyPartners, after.KeyPartners)
}

func TestService_UpdateRejectsInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"array body", []interface{}{}},
		{"string body", "x"},
		{"null body", nil},
		{"name not a string", map[string]interface{}{"name": 42.0}},
		{"block not an object", map[string]interface{}{"channels": "web"}},
		{"block without content", map[string]interface{}{"channels": map[string]interface{}{}}},
		{"empty content", map[string]interface{}{"channels": map[string]interface{}{"content": []interface{}{}}}},
		{"non-string item", map[string]interface{}{"channels": map[string]interface{}{"content": []interface{}{1.0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := createTestService(t, store.NewMemoryStore())
			ctx := context.Background()
			before, err := svc.Generate(ctx, GenerateRequest{Prompt: "web"})
			require.NoError(t, err)

			_, err = svc.Update(ctx, before.ID, tt.body)
			assert.Equal(t, apperrors.ErrCodeValidationFailed, errorCode(t, err))

			after, err := svc.Get(ctx, before.ID)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestService_UpdateUnknownIDBeatsNonObjectBody(t *testing.T) {
	svc, _ := createTestService(t, store.NewMemoryStore())

	for _, body := range []interface{}{[]interface{}{}, "x", 3.0} {
		_, err := svc.Update(context.Background(), "missing", body)
		assert.Equal(t, apperrors.ErrCodeCanvasNotFound, errorCode(t, err), "body %v", body)
	}
}

func TestRejectedFields(t *testing.T) {
	result, err := updateSchema.Validate(map[string]interface{}{
		"name":              1.0,
		"channels":          map[string]interface{}{"content": []interface{}{}},
		"customer_segments": "web",
		"key_partners":      map[string]interface{}{"content": []interface{}{"ok"}},
	})
	require.NoError(t, err)
	require.False(t, result.Valid)

	assert.ElementsMatch(t,
		[]string{"name", registry.FieldChannels, registry.FieldCustomerSegments},
		rejectedFields(result))
}

// ==========================
// Delete / Duplicate
// ==========================

func TestService_Delete(t *testing.T) {
	svc, _ := createTestService(t, store.NewMemoryStore())
	ctx := context.Background()

	c, err := svc.Generate(ctx, GenerateRequest{Prompt: "app"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Get(ctx, c.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestService_Duplicate(t *testing.T) {
	svc, clock := createTestService(t, store.NewMemoryStore())
	ctx := context.Background()

	original, err := svc.Generate(ctx, GenerateRequest{Prompt: "AI 구독 앱", Name: "Original"})
	require.NoError(t, err)
	clock.Advance(time.Hour)

	dup, err := svc.Duplicate(ctx, original.ID)
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, dup.ID)
	assert.Equal(t, "Original (Copy)", dup.Name)
	assert.Equal(t, clock.Now(), dup.CreatedAt)
	assert.Equal(t, clock.Now(), dup.UpdatedAt)
	if diff := cmp.Diff(original, dup, cmpopts.IgnoreFields(models.BusinessCanvas{}, "ID", "Name", "CreatedAt", "UpdatedAt")); diff != "" {
		t.Errorf("duplicate blocks differ (-original +duplicate):\n%s", diff)
	}

	dup.KeyResources.Content[0] = "mutated"
	stored, err := svc.Get(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original, stored)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// ==========================
// Store failures
// ==========================

func TestService_StoreFailures(t *testing.T) {
	down := errors.New("redis: connection refused")
	svc, _ := createTestService(t, failingStore{err: down})
	ctx := context.Background()

	_, err := svc.Generate(ctx, GenerateRequest{Prompt: "app"})
	assert.Equal(t, apperrors.ErrCodeStoreUnavailable, errorCode(t, err))
	assert.ErrorIs(t, err, down)

	_, err = svc.List(ctx)
	assert.Equal(t, apperrors.ErrCodeStoreUnavailable, errorCode(t, err))

	_, err = svc.Get(ctx, "x")
	assert.Equal(t, apperrors.ErrCodeStoreUnavailable, errorCode(t, err))

	assert.Error(t, svc.Ready(ctx))
}

func TestService_Ready(t *testing.T) {
	svc, _ := createTestService(t, store.NewMemoryStore())
	assert.NoError(t, svc.Ready(context.Background()))
}

// ==========================
// Patch
// ==========================

func TestNewPatch(t *testing.T) {
	p := NewPatch(map[string]interface{}{
		"name":          "Renamed",
		"key_resources": map[string]interface{}{"content": []interface{}{"a", "b"}},
		"updated_at":    "2020-01-01T00:00:00Z",
	})

	require.NotNil(t, p.Name)
	assert.Equal(t, "Renamed", *p.Name)
	assert.Equal(t, map[string][]string{registry.FieldKeyResources: {"a", "b"}}, p.Blocks)
	assert.False(t, p.Empty())
	assert.True(t, NewPatch(map[string]interface{}{"id": "x"}).Empty())
}
