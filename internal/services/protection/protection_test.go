package protection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edushield/edushield/internal/models"
)

func strPtr(s string) *string { return &s }

func TestDirectives_NoneWithoutWatermark(t *testing.T) {
	course := &models.Course{
		ProtectionLevel: models.ProtectionNone,
		AllowCopy:       false,
		AllowPrint:      false,
	}

	assert.Nil(t, Directives(course))
}

func TestDirectives_NoneWithWatermark(t *testing.T) {
	course := &models.Course{
		ProtectionLevel: models.ProtectionNone,
		WatermarkText:   strPtr("© edushield"),
	}

	d := Directives(course)
	require.NotNil(t, d)
	assert.Equal(t, "© edushield", d.Watermark)
	assert.Empty(t, d.BlockedEvents)
	assert.Nil(t, d.DevtoolsPoll)
}

func TestDirectives_BasicRespectsFlags(t *testing.T) {
	tests := []struct {
		name           string
		course         *models.Course
		wantBlocked    []string
		wantNotBlocked []string
	}{
		{
			name: "copy forbidden",
			course: &models.Course{
				ProtectionLevel: models.ProtectionBasic,
				AllowCopy:       false,
				AllowPrint:      true,
				AllowScreenshot: true,
			},
			wantBlocked:    []string{"copy", "contextmenu", "selectstart"},
			wantNotBlocked: []string{"beforeprint", "keydown:printscreen"},
		},
		{
			name: "print forbidden",
			course: &models.Course{
				ProtectionLevel: models.ProtectionBasic,
				AllowCopy:       true,
				AllowPrint:      false,
				AllowScreenshot: true,
			},
			wantBlocked:    []string{"beforeprint", "keydown:ctrl+p"},
			wantNotBlocked: []string{"copy", "keydown:f12"},
		},
		{
			name: "screenshot forbidden",
			course: &models.Course{
				ProtectionLevel: models.ProtectionBasic,
				AllowCopy:       true,
				AllowPrint:      true,
				AllowScreenshot: false,
			},
			wantBlocked:    []string{"keydown:printscreen", "keydown:f12", "keydown:ctrl+shift+i"},
			wantNotBlocked: []string{"copy", "beforeprint"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Directives(tt.course)
			require.NotNil(t, d)
			for _, ev := range tt.wantBlocked {
				assert.Contains(t, d.BlockedEvents, ev)
			}
			for _, ev := range tt.wantNotBlocked {
				assert.NotContains(t, d.BlockedEvents, ev)
			}
			assert.Nil(t, d.DevtoolsPoll)
		})
	}
}

func TestDirectives_BasicAllAllowed(t *testing.T) {
	course := &models.Course{
		ProtectionLevel: models.ProtectionBasic,
		AllowCopy:       true,
		AllowPrint:      true,
		AllowScreenshot: true,
	}

	assert.Nil(t, Directives(course))
}

func TestDirectives_StrictIgnoresFlags(t *testing.T) {
	course := &models.Course{
		ProtectionLevel: models.ProtectionStrict,
		AllowCopy:       true,
		AllowPrint:      true,
		AllowScreenshot: true,
		WatermarkText:   strPtr("confidential"),
	}

	d := Directives(course)
	require.NotNil(t, d)
	assert.Contains(t, d.BlockedEvents, "copy")
	assert.Contains(t, d.BlockedEvents, "beforeprint")
	assert.Contains(t, d.BlockedEvents, "keydown:printscreen")
	assert.Equal(t, "confidential", d.Watermark)

	require.NotNil(t, d.DevtoolsPoll)
	assert.Equal(t, 1000, d.DevtoolsPoll.IntervalMS)
	assert.Equal(t, 160, d.DevtoolsPoll.ThresholdPX)
	assert.True(t, d.DevtoolsPoll.WarnOnce)
}
