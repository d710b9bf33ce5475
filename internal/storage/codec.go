package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
)

// v0HintKeys are the hint counters that unversioned saves kept at the top
// level of the record instead of under "hints".
var v0HintKeys = []string{"hintTokens", "dailyFreeHints", "lastHintResetDate", "recipeFreeHintUsed"}

func encodeRecord(rec *domain.SaveRecord) ([]byte, error) {
	out := rec.Clone()
	out.Version = domain.SaveRecordVersion
	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("encoding save record: %w", err)
	}
	return data, nil
}

// decodeRecord sniffs the version, upgrades older layouts and decodes.
func decodeRecord(data []byte) (*domain.SaveRecord, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, domain.ErrCorruptRecord
	}

	version := gjson.GetBytes(data, "version").Int()
	switch {
	case version == 0:
		migrated, err := migrateV0(data)
		if err != nil {
			return nil, err
		}
		data = migrated
	case version > domain.SaveRecordVersion:
		return nil, fmt.Errorf("save record version %d: %w", version, domain.ErrUnsupportedVersion)
	}

	var rec domain.SaveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}
	rec.Version = domain.SaveRecordVersion
	return &rec, nil
}

// migrateV0 moves the top-level hint counters under "hints" and rewrites
// epoch-millisecond timestamps as RFC 3339 strings.
func migrateV0(data []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}

	hints := make(map[string]json.RawMessage)
	if existing := gjson.GetBytes(data, "hints"); existing.IsObject() {
		existing.ForEach(func(k, v gjson.Result) bool {
			hints[k.String()] = json.RawMessage(v.Raw)
			return true
		})
	}
	for _, key := range v0HintKeys {
		res := gjson.GetBytes(data, key)
		if !res.Exists() {
			continue
		}
		if _, ok := hints[key]; !ok {
			hints[key] = json.RawMessage(res.Raw)
		}
		delete(fields, key)
	}

	raw, err := json.Marshal(hints)
	if err != nil {
		return nil, fmt.Errorf("migrating v0 hints: %w", err)
	}
	fields["hints"] = raw

	if at := gjson.GetBytes(data, "lastEnergyAt"); at.Type == gjson.Number {
		fields["lastEnergyAt"] = epochMillisJSON(at.Int())
	}
	if list := gjson.GetBytes(data, "collectibles"); list.IsArray() {
		elems := list.Array()
		items := make([]json.RawMessage, 0, len(elems))
		for _, c := range elems {
			item := json.RawMessage(c.Raw)
			if at := c.Get("obtainedAt"); c.IsObject() && at.Type == gjson.Number {
				var obj map[string]json.RawMessage
				if err := json.Unmarshal(item, &obj); err != nil {
					return nil, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
				}
				obj["obtainedAt"] = epochMillisJSON(at.Int())
				if item, err = json.Marshal(obj); err != nil {
					return nil, fmt.Errorf("migrating v0 collectibles: %w", err)
				}
			}
			items = append(items, item)
		}
		if fields["collectibles"], err = json.Marshal(items); err != nil {
			return nil, fmt.Errorf("migrating v0 collectibles: %w", err)
		}
	}
	fields["version"] = json.RawMessage(fmt.Sprintf("%d", domain.SaveRecordVersion))
	return json.Marshal(fields)
}

func epochMillisJSON(ms int64) json.RawMessage {
	return json.RawMessage(`"` + time.UnixMilli(ms).UTC().Format(time.RFC3339Nano) + `"`)
}
