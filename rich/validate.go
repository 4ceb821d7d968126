package rich

import (
	"fmt"
	"slices"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/go-rich/ir"
)

// checkKind reports a variant mismatch between kinds. Values which are not
// statically typed (maps, sequences, primitives) may change kind, so a
// dynamic value is treated as a sum over kinds.
func checkKind(path string, v *ir.Node, n Nested) error {
	if vk, nk := v.Type.Kind(), n.Kind(); vk != nk {
		return &ShapeMismatch{
			Reason:      VariantMismatch,
			Path:        path,
			ExpectedTag: nk.String(),
			ActualTag:   vk.String(),
		}
	}
	return nil
}

func checkLength(path string, expected, actual int) error {
	if expected == actual {
		return nil
	}
	return &ShapeMismatch{
		Reason:   LengthMismatch,
		Path:     path,
		Expected: expected,
		Actual:   actual,
	}
}

func checkVariant(path, expected, actual string) error {
	if expected == actual {
		return nil
	}
	return &ShapeMismatch{
		Reason:      VariantMismatch,
		Path:        path,
		ExpectedTag: expected,
		ActualTag:   actual,
	}
}

// checkFields panics if the field names of a product (or named variant
// payload) differ from the metadata: both come from the same registered
// type, so a difference is a programming error.
func checkFields(path, what string, fs []FieldMeta, v *ir.Node) {
	keys := v.Keys()
	ok := len(keys) == len(fs) && len(v.Values) == len(fs)
	for i := 0; ok && i < len(fs); i++ {
		ok = fs[i].Name == keys[i]
	}
	if ok {
		return
	}
	names := make([]string, len(fs))
	for i := range fs {
		names[i] = fs[i].Name
	}
	panic(fmt.Sprintf("rich: %s at %q: fields %q do not match metadata %q", what, path, keys, names))
}

// keyRuneBase keeps key runes clear of the surrogate range.
const keyRuneBase = 0xE000

// matchKeys matches the keys of a map value against the keys of its
// metadata. The result maps each value index to the metadata index of the
// same key. The key sequences are diffed so that missing and extra keys are
// reported in document order.
func matchKeys(path string, want, got []string) ([]int, error) {
	index := map[string]rune{}
	keys := map[rune]string{}
	wantRunes := keyRunes(index, keys, want)
	gotRunes := keyRunes(index, keys, got)

	if !slices.Equal(wantRunes, gotRunes) {
		wantSet := make(map[string]bool, len(want))
		for _, k := range want {
			wantSet[k] = true
		}
		gotSet := make(map[string]bool, len(got))
		for _, k := range got {
			gotSet[k] = true
		}
		var missing, extra []string
		diffs := diffmatchpatch.New().DiffMainRunes(wantRunes, gotRunes, false)
		for i := range diffs {
			d := &diffs[i]
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				for _, r := range d.Text {
					if k := keys[r]; !gotSet[k] {
						missing = append(missing, k)
					}
				}
			case diffmatchpatch.DiffInsert:
				for _, r := range d.Text {
					if k := keys[r]; !wantSet[k] {
						extra = append(extra, k)
					}
				}
			}
		}
		if len(missing) != 0 || len(extra) != 0 {
			return nil, &ShapeMismatch{
				Reason:  KeySetMismatch,
				Path:    path,
				Missing: missing,
				Extra:   extra,
			}
		}
	}

	if len(want) != len(got) {
		return nil, &ShapeMismatch{
			Reason:  KeySetMismatch,
			Path:    path,
			Missing: duplicates(want),
			Extra:   duplicates(got),
		}
	}
	pos := make(map[string]int, len(want))
	for j, k := range want {
		pos[k] = j
	}
	perm := make([]int, len(got))
	for i, k := range got {
		perm[i] = pos[k]
	}
	return perm, nil
}

func keyRunes(index map[string]rune, keys map[rune]string, ks []string) []rune {
	rs := make([]rune, len(ks))
	for i, k := range ks {
		r, ok := index[k]
		if !ok {
			r = rune(keyRuneBase + len(index))
			index[k] = r
			keys[r] = k
		}
		rs[i] = r
	}
	return rs
}

func duplicates(ks []string) []string {
	seen := make(map[string]bool, len(ks))
	var res []string
	for _, k := range ks {
		if seen[k] {
			res = append(res, k)
		}
		seen[k] = true
	}
	return res
}
