package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDonorAction(t *testing.T) {
	for _, valid := range []string{"warn", "ban", "unban"} {
		action, err := ParseDonorAction(valid)
		assert.NoError(t, err)
		assert.Equal(t, DonorAction(valid), action)
	}

	for _, invalid := range []string{"", "delete", "WARN", "ban "} {
		_, err := ParseDonorAction(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}
