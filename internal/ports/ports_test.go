package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/associate-quotes/internal/domain"
)

// mockChecker implements HealthChecker for testing.
type mockChecker struct {
	name string
	err  error
}

func (m *mockChecker) Name() string {
	return m.name
}

func (m *mockChecker) Check(ctx context.Context) error {
	return m.err
}

// TestNewHealthRegistry verifies that a new registry is created with empty checkers.
func TestNewHealthRegistry(t *testing.T) {
	registry := NewHealthRegistry()

	require.NotNil(t, registry)
	assert.NotNil(t, registry.checkers)
	assert.Empty(t, registry.checkers)
}

// TestRegister_Success verifies that a checker can be registered successfully.
func TestRegister_Success(t *testing.T) {
	registry := NewHealthRegistry()
	checker := &mockChecker{name: "quotes-service"}

	err := registry.Register(checker)

	require.NoError(t, err)
	assert.Len(t, registry.checkers, 1)
	assert.Equal(t, "quotes-service", registry.checkers[0].Name())
}

// TestRegister_DuplicateName verifies that registering duplicate checker names returns an error.
func TestRegister_DuplicateName(t *testing.T) {
	registry := NewHealthRegistry()
	checker1 := &mockChecker{name: "quotes-service"}
	checker2 := &mockChecker{name: "quotes-service"}

	err := registry.Register(checker1)
	require.NoError(t, err)

	err = registry.Register(checker2)

	require.Error(t, err)
	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "quotes-service")
	assert.Len(t, registry.checkers, 1)
}

// TestCheckAll_NoCheckers verifies that an empty registry returns healthy status.
func TestCheckAll_NoCheckers(t *testing.T) {
	registry := NewHealthRegistry()
	ctx := context.Background()

	result := registry.CheckAll(ctx)

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.NotNil(t, result.Checks)
	assert.Empty(t, result.Checks)
	assert.False(t, result.Timestamp.IsZero())
}

// TestCheckAll_AllHealthy verifies that multiple healthy checkers result in healthy status.
func TestCheckAll_AllHealthy(t *testing.T) {
	registry := NewHealthRegistry()
	checker1 := &mockChecker{name: "quotes-service", err: nil}
	checker2 := &mockChecker{name: "cache", err: nil}
	checker3 := &mockChecker{name: "queue", err: nil}

	require.NoError(t, registry.Register(checker1))
	require.NoError(t, registry.Register(checker2))
	require.NoError(t, registry.Register(checker3))

	ctx := context.Background()
	result := registry.CheckAll(ctx)

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.Len(t, result.Checks, 3)

	// Verify all checks are healthy
	assert.Equal(t, HealthStatusHealthy, result.Checks["quotes-service"].Status)
	assert.Equal(t, HealthStatusHealthy, result.Checks["cache"].Status)
	assert.Equal(t, HealthStatusHealthy, result.Checks["queue"].Status)

	// Verify no error messages
	assert.Empty(t, result.Checks["quotes-service"].Message)
	assert.Empty(t, result.Checks["cache"].Message)
	assert.Empty(t, result.Checks["queue"].Message)
}

// TestCheckAll_OneUnhealthy verifies that one failing checker makes the overall result unhealthy.
func TestCheckAll_OneUnhealthy(t *testing.T) {
	registry := NewHealthRegistry()
	checker1 := &mockChecker{name: "quotes-service", err: nil}
	checker2 := &mockChecker{name: "cache", err: errors.New("connection timeout")}
	checker3 := &mockChecker{name: "queue", err: nil}

	require.NoError(t, registry.Register(checker1))
	require.NoError(t, registry.Register(checker2))
	require.NoError(t, registry.Register(checker3))

	ctx := context.Background()
	result := registry.CheckAll(ctx)

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Len(t, result.Checks, 3)

	// Verify individual statuses
	assert.Equal(t, HealthStatusHealthy, result.Checks["quotes-service"].Status)
	assert.Equal(t, HealthStatusUnhealthy, result.Checks["cache"].Status)
	assert.Equal(t, HealthStatusHealthy, result.Checks["queue"].Status)

	// Verify error message is captured
	assert.Empty(t, result.Checks["quotes-service"].Message)
	assert.Equal(t, "connection timeout", result.Checks["cache"].Message)
	assert.Empty(t, result.Checks["queue"].Message)
}

// contextAwareChecker implements HealthChecker that respects context cancellation.
type contextAwareChecker struct {
	name string
}

func (c *contextAwareChecker) Name() string {
	return c.name
}

func (c *contextAwareChecker) Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// TestCheckAll_ContextCancelled verifies that the health check respects context cancellation.
func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry()
	checker := &contextAwareChecker{name: "slow-service"}

	require.NoError(t, registry.Register(checker))

	// Create a context that's already cancelled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Len(t, result.Checks, 1)
	assert.Equal(t, HealthStatusUnhealthy, result.Checks["slow-service"].Status)
	assert.Contains(t, result.Checks["slow-service"].Message, "context canceled")
}

// TestNames_RegistrationOrder verifies that Names reports checkers in the order registered.
func TestNames_RegistrationOrder(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&mockChecker{name: "quotes-service"}))
	require.NoError(t, registry.Register(&mockChecker{name: "session-keys"}))

	assert.Equal(t, []string{"quotes-service", "session-keys"}, registry.Names())
}

// TestIdentityProviderFunc verifies the function adapter forwards to the wrapped function.
func TestIdentityProviderFunc(t *testing.T) {
	associate := "A-77"
	provider := IdentityProviderFunc(func(_ context.Context) (domain.Identity, error) {
		return domain.Identity{AssociateID: &associate}, nil
	})

	id, err := provider.Identity(context.Background())

	require.NoError(t, err)
	require.NotNil(t, id.AssociateID)
	assert.Equal(t, "A-77", *id.AssociateID)
	assert.Nil(t, id.CompanyID)
}
