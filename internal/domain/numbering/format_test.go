package numbering_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-api/internal/domain/numbering"
)

func TestFormat(t *testing.T) {
	cases := map[int64]string{
		1:       "00001",
		42:      "00042",
		99999:   "99999",
		100000:  "100000",
		1234567: "1234567",
	}
	for n, want := range cases {
		assert.Equal(t, want, numbering.Format(n), "n=%d", n)
	}
}
