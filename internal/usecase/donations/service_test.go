package donations

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"pet-adoption-hub/internal/infra/store"
)

func TestMarkIsIdempotent(t *testing.T) {
	mem := store.NewMemory(0)
	svc := NewService(mem, zerolog.Nop())

	svc.Mark("c1")
	svc.Mark("c2")
	first := svc.List()
	svc.Mark("c1")
	second := svc.List()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("повторный Mark изменил список: %v -> %v", first, second)
	}
	if !reflect.DeepEqual(second, []string{"c1", "c2"}) {
		t.Fatalf("unexpected list: %v", second)
	}
	raw, _, _ := mem.GetItem(StorageKey)
	if raw != `["c1","c2"]` {
		t.Fatalf("unexpected persisted value: %s", raw)
	}
}

func TestHas(t *testing.T) {
	svc := NewService(store.NewMemory(0), zerolog.Nop())
	if svc.Has("c1") {
		t.Fatalf("пустой список не должен содержать c1")
	}
	svc.Mark("c1")
	if !svc.Has("c1") {
		t.Fatalf("ожидали c1 после Mark")
	}
	if svc.Has("c2") {
		t.Fatalf("c2 не добавлялся")
	}
}

func TestListCorruptedData(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "mixed types", raw: `["c1", 5, null, {"id":"c2"}, "c3", true]`, want: []string{"c1", "c3"}},
		{name: "not json", raw: `c1,c2`, want: []string{}},
		{name: "object", raw: `{"c1":true}`, want: []string{}},
		{name: "null", raw: `null`, want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mem := store.NewMemory(0)
			if err := mem.SetItem(StorageKey, tc.raw); err != nil {
				t.Fatalf("seed: %v", err)
			}
			svc := NewService(mem, zerolog.Nop())
			if got := svc.List(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("List() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMarkAfterCorruptionRewritesCleanList(t *testing.T) {
	mem := store.NewMemory(0)
	_ = mem.SetItem(StorageKey, `["c1", 42]`)
	svc := NewService(mem, zerolog.Nop())
	svc.Mark("c2")
	if got := svc.List(); !reflect.DeepEqual(got, []string{"c1", "c2"}) {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	svc := NewService(store.Disabled{}, zerolog.Nop())
	svc.Mark("c1")
	if got := svc.List(); len(got) != 0 {
		t.Fatalf("ожидали пустой список, получили %v", got)
	}
	if svc.Has("c1") {
		t.Fatalf("выключенное хранилище ничего не помнит")
	}
}
