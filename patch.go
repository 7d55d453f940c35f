package nitro

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyPatch applies an RFC 6902 JSON patch to the store by round-
// tripping through the serialized form. A patch that fails to decode
// or apply leaves the store unchanged.
func (s *Store) ApplyPatch(patch []byte) error {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return fmt.Errorf("decoding patch: %w", err)
	}
	doc, err := json.Marshal(s.root)
	if err != nil {
		return err
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return fmt.Errorf("applying patch: %w", err)
	}
	return s.replaceFromJSON(out)
}

// ApplyMergePatch applies an RFC 7386 merge patch. Note its null-
// deletes semantics differ from Merge, which treats null as a value.
func (s *Store) ApplyMergePatch(patch []byte) error {
	doc, err := json.Marshal(s.root)
	if err != nil {
		return err
	}
	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return fmt.Errorf("applying merge patch: %w", err)
	}
	return s.replaceFromJSON(out)
}

func (s *Store) replaceFromJSON(doc []byte) error {
	var root map[string]any
	if err := json.Unmarshal(doc, &root); err != nil {
		return fmt.Errorf("patched document is not a mapping: %w", err)
	}
	s.root = root
	return nil
}
