package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assonuovavita/sitegen/internal/platform"
	"github.com/assonuovavita/sitegen/pkg/core"
)

type staticSource []core.Document

func (s staticSource) Discover(context.Context) ([]core.Document, error) { return s, nil }

func TestNew(t *testing.T) {
	t.Run("Filesystem Source", func(t *testing.T) {
		root := t.TempDir()
		page := "---\ntitle: Contatti\ndescription: Come raggiungerci, orari di apertura e recapiti dell'associazione.\nslug: /contatti\ndate: 2024-05-01\nshowInNav: true\n---\nScrivici.\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, "contatti.md"), []byte(page), 0o644))

		svc, err := platform.New(platform.WithRoots(root))
		require.NoError(t, err)

		site, err := svc.Build(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"/contatti"}, site.Routes.Slugs())
		assert.Equal(t, platform.DefaultSite, site.Info)

		state, ok := svc.State().(core.ServiceState)
		require.True(t, ok)
		assert.Equal(t, "repository", state.SourceType)
		require.NotNil(t, state.LastBuild)
		assert.Equal(t, 1, state.LastBuild.Routes)
	})

	t.Run("Missing Root Fails", func(t *testing.T) {
		_, err := platform.New(platform.WithRoots(filepath.Join(t.TempDir(), "missing")))
		assert.Error(t, err)
	})

	t.Run("Injected Source", func(t *testing.T) {
		svc, err := platform.New(platform.WithSource(staticSource{}), platform.WithRoots("/does/not/matter"))
		require.NoError(t, err)
		site, err := svc.Build(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, site.Routes.Len())
	})
}
