//go:build unit

package internal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/rios0rios0/releaser/internal"
)

func TestRegisterProviders(t *testing.T) {
	t.Parallel()

	t.Run("should wire the version controller into the app", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()
		require.NoError(t, internal.RegisterProviders(container))

		// when
		var app *internal.AppInternal
		err := container.Invoke(func(ai *internal.AppInternal) {
			app = ai
		})

		// then
		require.NoError(t, err)
		require.Len(t, app.GetControllers(), 1)
		assert.Equal(t, "version <project>", app.GetControllers()[0].GetBind().Use)
	})
}
