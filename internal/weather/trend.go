package weather

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/pwelgemoed-sys/lonehill-weather/internal/ecowitt"
	"github.com/pwelgemoed-sys/lonehill-weather/internal/kv"
)

// TrendStore maintains the rolling trend history in a key-value store.
//
// Each Update is a plain read-append-trim-write cycle with no locking:
// overlapping requests may race and the last writer wins. That is an
// accepted property, not an oversight; the history is best-effort.
type TrendStore struct {
	kv     kv.Store
	key    string
	window time.Duration
	now    func() time.Time
}

// NewTrendStore creates a TrendStore writing under the given key with
// the given retention window.
func NewTrendStore(store kv.Store, key string, window time.Duration) *TrendStore {
	return &TrendStore{
		kv:     store,
		key:    key,
		window: window,
		now:    time.Now,
	}
}

// Update merges the current reading into the persisted history and
// returns the trimmed result. Storage failures on either side never
// propagate: an unreadable or corrupt blob resets the history to empty,
// and a failed write still returns the in-memory result.
func (t *TrendStore) Update(ctx context.Context, rt *ecowitt.Realtime) TrendHistory {
	history := t.load(ctx)

	now := t.now().UnixMilli()
	cutoff := now - t.window.Milliseconds()

	if rt != nil {
		if inHg, ok := rt.Pressure.Float(); ok {
			history.Pressure = append(history.Pressure, Sample{Time: now, Value: InHgToHectopascals(inHg)})
		}
		if degF, ok := rt.OutdoorTemperature.Float(); ok {
			history.Temperature = append(history.Temperature, Sample{Time: now, Value: FahrenheitToCelsius(degF)})
		}
	}

	history.Pressure = trimBefore(history.Pressure, cutoff)
	history.Temperature = trimBefore(history.Temperature, cutoff)

	// Expire slightly past the window so the blob self-deletes if the
	// station goes offline and nothing refreshes it.
	if blob, err := json.Marshal(history); err == nil {
		if err := t.kv.Set(ctx, t.key, blob, t.window+time.Hour); err != nil {
			log.Printf("trend history: persist failed: %v", err)
		}
	}

	return history
}

func (t *TrendStore) load(ctx context.Context) TrendHistory {
	blob, err := t.kv.Get(ctx, t.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("trend history: read failed, starting empty: %v", err)
		}
		return EmptyTrendHistory()
	}

	var history TrendHistory
	if err := json.Unmarshal(blob, &history); err != nil {
		log.Printf("trend history: corrupt blob, starting empty: %v", err)
		return EmptyTrendHistory()
	}
	// A partially-shaped blob is discarded, not repaired.
	if history.Pressure == nil || history.Temperature == nil {
		return EmptyTrendHistory()
	}
	return history
}

// trimBefore keeps samples strictly newer than cutoff. A sample exactly
// at the cutoff is evicted; downstream consumers depend on the strict
// comparison.
func trimBefore(samples []Sample, cutoff int64) []Sample {
	kept := samples[:0]
	for _, s := range samples {
		if s.Time > cutoff {
			kept = append(kept, s)
		}
	}
	return kept
}
