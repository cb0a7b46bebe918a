package content

import "encoding/json"

// PartialSettings is a persisted settings object as stored, which may hold
// any subset of the known keys (older saves lack fields added since).
type PartialSettings map[string]json.RawMessage

// MergeSettings assigns every known string key in partial over dst and
// leaves the remaining fields of dst untouched. Unknown keys and non-string
// values are skipped. It returns the keys that were applied.
func MergeSettings(dst *SiteSettings, partial PartialSettings) []string {
	var applied []string
	for key, raw := range partial {
		if !HasField(key) {
			continue
		}
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil || v == nil {
			continue
		}
		_ = dst.Set(key, *v)
		applied = append(applied, key)
	}
	return applied
}
