package store

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/existflow/easyclip/internal/model"
)

// legacyClip is the shape both pre-unification layouts stored. Records are
// decoded individually so one malformed entry never fails the migration.
type legacyClip struct {
	ID         string         `json:"id"`
	Type       model.ClipType `json:"type"`
	Name       string         `json:"name"`
	Content    string         `json:"content"`
	CreatedAt  *time.Time     `json:"createdAt"`
	IsFavorite bool           `json:"isFavorite"`
}

// decodeLegacy validates a single legacy record. A record with unparseable
// JSON, an empty id, or an unknown type is rejected.
func decodeLegacy(raw json.RawMessage) (legacyClip, bool) {
	var lc legacyClip
	if err := json.Unmarshal(raw, &lc); err != nil {
		return legacyClip{}, false
	}
	if lc.ID == "" || !lc.Type.Valid() {
		return legacyClip{}, false
	}
	return lc, true
}

// toClip converts a legacy record into the unified schema. Records without a
// creation timestamp are stamped with the migration time.
func (lc legacyClip) toClip(now time.Time) model.Clip {
	created := now
	if lc.CreatedAt != nil {
		created = *lc.CreatedAt
	}
	return model.Clip{
		ID:         lc.ID,
		Type:       lc.Type,
		Name:       lc.Name,
		Content:    lc.Content,
		CreatedAt:  created,
		UpdatedAt:  created,
		IsFavorite: lc.IsFavorite,
	}
}

// migrateLegacy merges the two legacy layouts into the unified schema:
//
//   - the folder map (folder id to clip list): each record gains its map key
//     as folderId and starts outside the recency list;
//   - the flat recent list: each record contributes its creation time as the
//     copy timestamp, updating the folder-sourced record when the id was
//     already seen, otherwise joining unfiled.
//
// Records are merged by id. Accumulation order is deterministic (sorted
// folder keys, then recent-list order), so re-running over the same legacy
// input produces an identical result. skipped counts rejected records; the
// legacy keys are left in place.
func (s *Clips) migrateLegacy() (merged []model.Clip, skipped int) {
	folderRaw, _, ferr := s.kv.Get(legacyFolderKey)
	recentRaw, _, rerr := s.kv.Get(legacyRecentKey)
	if ferr != nil || rerr != nil {
		return nil, 0
	}
	if folderRaw == "" && recentRaw == "" {
		return nil, 0
	}

	now := s.now()
	byID := map[string]model.Clip{}
	order := []string{}

	if folderRaw != "" {
		var folders map[string]json.RawMessage
		if err := json.Unmarshal([]byte(folderRaw), &folders); err == nil {
			folderIDs := make([]string, 0, len(folders))
			for id := range folders {
				folderIDs = append(folderIDs, id)
			}
			sort.Strings(folderIDs)

			for _, folderID := range folderIDs {
				var records []json.RawMessage
				if err := json.Unmarshal(folders[folderID], &records); err != nil {
					skipped++
					continue
				}
				for _, raw := range records {
					lc, ok := decodeLegacy(raw)
					if !ok {
						skipped++
						continue
					}
					clip := lc.toClip(now)
					fid := folderID
					clip.FolderID = &fid
					if _, seen := byID[clip.ID]; !seen {
						order = append(order, clip.ID)
					}
					byID[clip.ID] = clip
				}
			}
		}
	}

	if recentRaw != "" {
		var records []json.RawMessage
		if err := json.Unmarshal([]byte(recentRaw), &records); err == nil {
			for _, raw := range records {
				lc, ok := decodeLegacy(raw)
				if !ok {
					skipped++
					continue
				}
				lastCopied := now
				if lc.CreatedAt != nil {
					lastCopied = *lc.CreatedAt
				}
				if existing, seen := byID[lc.ID]; seen {
					existing.LastCopiedAt = &lastCopied
					byID[lc.ID] = existing
				} else {
					clip := lc.toClip(now)
					clip.LastCopiedAt = &lastCopied
					order = append(order, clip.ID)
					byID[clip.ID] = clip
				}
			}
		}
	}

	merged = make([]model.Clip, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}
	return merged, skipped
}
