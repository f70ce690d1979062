package req

import (
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONBody(t *testing.T) {
	body, length, err := NewJSONBody(map[string]string{"fileStatus": "PendingUpload"})
	require.NoError(t, err)

	content, err := ioutil.ReadAll(body)
	require.NoError(t, err)

	assert.JSONEq(t, `{"fileStatus": "PendingUpload"}`, string(content))
	assert.Equal(t, int64(len(content)), length)
	assert.NoError(t, body.Close())
}

func TestNewJSONBodyNil(t *testing.T) {
	body, length, err := NewJSONBody(nil)
	require.NoError(t, err)

	content, err := ioutil.ReadAll(body)
	require.NoError(t, err)

	assert.Empty(t, content)
	assert.Equal(t, int64(0), length)
}

func TestNewJSONBodyUnencodable(t *testing.T) {
	_, _, err := NewJSONBody(map[string]interface{}{"c": make(chan int)})
	assert.Error(t, err)
}
