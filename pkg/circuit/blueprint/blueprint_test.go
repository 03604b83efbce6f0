package blueprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paymentYAML = `
name: payment
tasks:
  - id: validate
    edge:
      signal: right
      attrs:
        type: railway
  - id: charge
    source: validate
ends:
  - id: success
    source: charge
    role: success
  - id: failure
    source: validate
    role: failure
    edge:
      signal: left
`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(paymentYAML))
	require.NoError(t, err)

	assert.Equal(t, "payment", def.Name)
	require.Len(t, def.Tasks, 2)
	require.Len(t, def.Ends, 2)

	validate := def.Tasks[0]
	assert.Equal(t, "validate", validate.ID)
	assert.Equal(t, "right", validate.Edge.Signal)
	assert.Equal(t, "railway", validate.Edge.Attrs["type"])

	charge := def.Tasks[1]
	assert.Equal(t, "charge", charge.ID)
	assert.Equal(t, "validate", charge.Source)
	assert.Empty(t, charge.Edge.Signal)

	failure := def.Ends[1]
	assert.Equal(t, "failure", failure.Role)
	assert.Equal(t, "left", failure.Edge.Signal)
}

func TestParse_MissingName(t *testing.T) {
	_, err := Parse([]byte("tasks:\n  - id: a\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definition has no name")
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("name: payment\nnodes:\n  - id: a\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode definition")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(paymentYAML), 0o644))

	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "payment", def.Name)
	assert.Len(t, def.Tasks, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
