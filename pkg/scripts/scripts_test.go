package scripts

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printerm/printerm/pkg/errors"
)

type cannedProvider struct {
	name     string
	bindings map[string]string
	err      error
}

func (p *cannedProvider) Name() string        { return p.name }
func (p *cannedProvider) Description() string { return "canned test provider" }

func (p *cannedProvider) GenerateContext(ctx context.Context) (map[string]string, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.bindings, nil
}

type blockingProvider struct{}

func (blockingProvider) Name() string        { return "test_block" }
func (blockingProvider) Description() string { return "blocks until cancelled" }

func (blockingProvider) GenerateContext(ctx context.Context) (map[string]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func init() {
	MustRegisterProvider(&cannedProvider{
		name:     "test_canned",
		bindings: map[string]string{"greeting": "hello"},
	})
	MustRegisterProvider(&cannedProvider{
		name: "test_boom",
		err:  fmt.Errorf("internal failure"),
	})
	MustRegisterProvider(blockingProvider{})
}

func TestBuiltinProvidersRegistered(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "agenda")
	assert.Contains(t, names, "date_utils")
	assert.Contains(t, names, "shopping_list")
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("no_such_script")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptNotFound))
}

func TestRunnerRunsProvider(t *testing.T) {
	bindings, err := NewRunner(0).Run(context.Background(), "test_canned")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"greeting": "hello"}, bindings)
}

func TestRunnerUnknownScript(t *testing.T) {
	_, err := NewRunner(0).Run(context.Background(), "no_such_script")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptNotFound))
}

func TestRunnerWrapsProviderFailure(t *testing.T) {
	_, err := NewRunner(0).Run(context.Background(), "test_boom")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptExecution))
	assert.Contains(t, err.Error(), "test_boom")
}

func TestRunnerTimeout(t *testing.T) {
	start := time.Now()
	_, err := NewRunner(20 * time.Millisecond).Run(context.Background(), "test_block")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptTimeout))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestAgendaProvider(t *testing.T) {
	// Wednesday in ISO week 29 of 2024
	wednesday := time.Date(2024, 7, 17, 12, 0, 0, 0, time.UTC)
	p := &agendaProvider{now: func() time.Time { return wednesday }}

	ctx, err := p.GenerateContext(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "29", ctx["week_number"])
	assert.Equal(t, "2024-07-15", ctx["week_start_date"])
	assert.Equal(t, "2024-07-21", ctx["week_end_date"])

	lines := strings.Split(ctx["days"], "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Monday    2024-07-15", lines[0])
	assert.Equal(t, "Wednesday 2024-07-17", lines[2])
	assert.Equal(t, "Sunday    2024-07-21", lines[6])
}

func TestAgendaWeekBoundsFromSunday(t *testing.T) {
	sunday := time.Date(2024, 7, 21, 23, 0, 0, 0, time.UTC)
	p := &agendaProvider{now: func() time.Time { return sunday }}

	ctx, err := p.GenerateContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-07-15", ctx["week_start_date"], "Sunday belongs to the week begun the previous Monday")
	assert.Equal(t, "2024-07-21", ctx["week_end_date"])
}

func TestDateUtilsProvider(t *testing.T) {
	moment := time.Date(2024, 7, 17, 15, 4, 5, 0, time.UTC)
	p := &dateUtilsProvider{now: func() time.Time { return moment }}

	ctx, err := p.GenerateContext(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-07-17", ctx["current_date"])
	assert.Equal(t, "15:04:05", ctx["current_time"])
	assert.Equal(t, "2024", ctx["year"])
	assert.Equal(t, "7", ctx["month"])
	assert.Equal(t, "2", ctx["weekday"], "0=Monday, Wednesday is 2")
	assert.Equal(t, "Jul 17, 2024", ctx["date_medium"])
	assert.Equal(t, "Wednesday, July 17, 2024", ctx["date_full"])
	assert.Equal(t, "03", ctx["hour_12"])
	assert.Equal(t, "PM", ctx["ampm"])
	assert.Equal(t, "2024-07-16", ctx["yesterday"])
	assert.Equal(t, "2024-07-18", ctx["tomorrow"])
	assert.Equal(t, "29", ctx["week_number"])
}

func TestShoppingListProvider(t *testing.T) {
	p := &shoppingListProvider{items: func() ([]string, error) {
		return []string{"milk", "2kg flour"}, nil
	}}

	ctx, err := p.GenerateContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[ ] milk\n[ ] 2kg flour", ctx["items"])
}

func TestShoppingListProviderEmpty(t *testing.T) {
	p := &shoppingListProvider{items: func() ([]string, error) { return nil, nil }}

	ctx, err := p.GenerateContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[ ] Add your items here", ctx["items"])
}
