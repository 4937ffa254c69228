package checks

import (
	"context"
	"testing"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// stubCheck is a minimal Check for registry and runner tests.
type stubCheck struct {
	id       string
	name     string
	findings []models.Finding
	err      error
	panicMsg string
}

func (s stubCheck) ID() string   { return s.id }
func (s stubCheck) Name() string { return s.name }

func (s stubCheck) Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.findings, s.err
}

func TestRegistry_PreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.RegisterAll([]Check{
		stubCheck{id: "C1"},
		stubCheck{id: "C2"},
		stubCheck{id: "C3"},
	})

	all := r.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(all))
	}
	for i, want := range []string{"C1", "C2", "C3"} {
		if all[i].ID() != want {
			t.Errorf("check[%d] = %q, want %q", i, all[i].ID(), want)
		}
	}
}

func TestRegistry_PanicsOnDuplicateID(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate check ID")
		}
	}()

	r := NewRegistry()
	r.Register(stubCheck{id: "DUP"})
	r.Register(stubCheck{id: "DUP"})
}

func TestRegistry_EmptyAll(t *testing.T) {
	if got := NewRegistry().All(); len(got) != 0 {
		t.Fatalf("expected empty registry, got %d checks", len(got))
	}
}
