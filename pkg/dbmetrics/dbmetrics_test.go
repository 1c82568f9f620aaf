package dbmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", Operation("SELECT day_label FROM category_time_slots"))
	assert.Equal(t, "update", Operation("  UPDATE category_time_slots SET active = $1"))
	assert.Equal(t, "insert", Operation("insert into x values ($1)"))
	assert.Equal(t, "unknown", Operation("   "))
}
