package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBrowseItems_UnknownEntity(t *testing.T) {
	_, _, err := loadBrowseItems(&cobra.Command{}, "warehouses")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warehouses")
	for _, entity := range browseEntities {
		assert.Contains(t, err.Error(), entity)
	}
}
