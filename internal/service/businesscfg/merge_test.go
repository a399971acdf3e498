package businesscfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepMergeRecursesIntoMaps(t *testing.T) {
	base := map[string]interface{}{
		"display": map[string]interface{}{"name": "Старое имя", "logo": "x.png"},
		"tz":      "UTC",
	}
	override := map[string]interface{}{
		"display": map[string]interface{}{"name": "Новое имя"},
	}

	got := deepMerge(base, override)

	display := got["display"].(map[string]interface{})
	assert.Equal(t, "Новое имя", display["name"])
	assert.Equal(t, "x.png", display["logo"])
	assert.Equal(t, "UTC", got["tz"])
}

func TestDeepMergeReplacesListsAndScalars(t *testing.T) {
	base := map[string]interface{}{
		"closed_dates": []interface{}{"2024-01-01", "2024-01-02"},
		"timezone":     "UTC",
	}
	override := map[string]interface{}{
		"closed_dates": []interface{}{"2024-06-10"},
		"timezone":     "Asia/Jerusalem",
	}

	got := deepMerge(base, override)

	// списки и скаляры заменяются целиком, без объединения
	assert.Equal(t, []interface{}{"2024-06-10"}, got["closed_dates"])
	assert.Equal(t, "Asia/Jerusalem", got["timezone"])
}

func TestDeepMergeTypeMismatchOverrideWins(t *testing.T) {
	base := map[string]interface{}{
		"working_hours": map[string]interface{}{"start": "09:00", "end": "17:00"},
	}
	override := map[string]interface{}{
		"working_hours": "closed",
	}

	got := deepMerge(base, override)
	assert.Equal(t, "closed", got["working_hours"])
}

func TestDeepMergeDoesNotMutateInputs(t *testing.T) {
	base := map[string]interface{}{
		"display": map[string]interface{}{"name": "База"},
	}
	override := map[string]interface{}{
		"display": map[string]interface{}{"name": "Правка"},
	}

	_ = deepMerge(base, override)

	assert.Equal(t, "База", base["display"].(map[string]interface{})["name"])
	assert.Equal(t, "Правка", override["display"].(map[string]interface{})["name"])
}
