package diff

import (
	"reflect"
	"strings"

	"github.com/google/uuid"
	odiff "github.com/r3labs/diff/v3"
)

// GetCustomDiffer builds a differ that treats uuid.UUID values as scalars
// instead of descending into their byte arrays.
func GetCustomDiffer() *odiff.Differ {
	ret, err := odiff.NewDiffer(odiff.CustomValueDiffers(&UUIDComparer{}))
	if err != nil {
		panic(err)
	}
	return ret
}

// ChangedFields returns the dotted field paths that differ between two
// revisions of a record. Used to populate update event payloads.
func ChangedFields(previous, current interface{}) ([]string, error) {
	changelog, err := GetCustomDiffer().Diff(previous, current)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(changelog))
	seen := make(map[string]struct{}, len(changelog))
	for _, change := range changelog {
		path := strings.Join(change.Path, ".")
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		fields = append(fields, path)
	}
	return fields, nil
}

type UUIDComparer struct{}

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
)

// Match reports whether both values are uuid.UUID fields.
func (c UUIDComparer) Match(a, b reflect.Value) bool {
	aok := a.Kind() == uuidType.Kind() && a.Type() == uuidType
	bok := b.Kind() == uuidType.Kind() && b.Type() == uuidType
	return (aok && bok) || (a.Kind() == reflect.Invalid && bok) || (b.Kind() == reflect.Invalid && aok)
}

// Diff records a single UPDATE change when the two UUIDs differ, rather than
// byte-wise changes inside the array.
func (c UUIDComparer) Diff(_ odiff.DiffType, _ odiff.DiffFunc, cl *odiff.Changelog, path []string, a reflect.Value, b reflect.Value, _ interface{}) error {
	valA := reflect.Indirect(a)
	valB := reflect.Indirect(b)

	if !valA.IsValid() || !valB.IsValid() {
		if valA.IsValid() != valB.IsValid() {
			cl.Add(odiff.UPDATE, path, a.Interface(), b.Interface())
		}
		return nil
	}

	u1 := valA.Interface().(uuid.UUID)
	u2 := valB.Interface().(uuid.UUID)

	if u1 != u2 {
		cl.Add(odiff.UPDATE, path, u1, u2)
	}
	return nil
}

// InsertParentDiffer is a no-op. UUIDs are leaves.
func (c UUIDComparer) InsertParentDiffer(_ func(path []string, a reflect.Value, b reflect.Value, p interface{}) error) {
}
