package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printerm/printerm/pkg/errors"
)

func TestStyleSetMerge(t *testing.T) {
	tests := []struct {
		name string
		base StyleSet
		over StyleSet
		want ResolvedStyle
	}{
		{
			name: "override wins per attribute",
			base: StyleSet{Align: AlignCenter.Ptr(), Bold: Bool(true)},
			over: StyleSet{Bold: Bool(false), Underline: Bool(true)},
			want: ResolvedStyle{Align: AlignCenter, Font: FontA, Bold: false, Underline: true},
		},
		{
			name: "unset override keeps base",
			base: StyleSet{Align: AlignRight.Ptr(), Font: FontB.Ptr()},
			over: StyleSet{},
			want: ResolvedStyle{Align: AlignRight, Font: FontB},
		},
		{
			name: "empty base takes override",
			base: StyleSet{},
			over: StyleSet{DoubleWidth: Bool(true), DoubleHeight: Bool(true)},
			want: ResolvedStyle{Align: AlignLeft, Font: FontA, DoubleWidth: true, DoubleHeight: true},
		},
		{
			name: "both empty resolves to defaults",
			base: StyleSet{},
			over: StyleSet{},
			want: ResolvedStyle{Align: AlignLeft, Font: FontA},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.base.Merge(tt.over).Resolved())
		})
	}
}

func TestStyleSetMergeSelfIsIdentity(t *testing.T) {
	sets := []StyleSet{
		{},
		{Bold: Bool(true)},
		{Align: AlignCenter.Ptr(), Font: FontB.Ptr(), Underline: Bool(false)},
		{Align: AlignRight.Ptr(), Bold: Bool(true), DoubleWidth: Bool(true), DoubleHeight: Bool(true)},
	}
	for _, s := range sets {
		assert.Equal(t, s, s.Merge(s))
	}
}

func TestStyleSetMergeDoesNotAlias(t *testing.T) {
	base := StyleSet{Bold: Bool(true)}
	over := StyleSet{Underline: Bool(true)}

	merged := base.Merge(over)
	*merged.Bold = false
	*merged.Underline = false

	assert.True(t, *base.Bold, "merge must copy values, not share pointers")
	assert.True(t, *over.Underline, "merge must copy values, not share pointers")
}

func TestStyleSetResolvedDefaults(t *testing.T) {
	got := StyleSet{}.Resolved()
	assert.Equal(t, ResolvedStyle{Align: AlignLeft, Font: FontA}, got)
}

func TestStyleSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		styles  StyleSet
		wantErr bool
	}{
		{"empty is valid", StyleSet{}, false},
		{"all attributes valid", StyleSet{
			Align: AlignCenter.Ptr(), Font: FontB.Ptr(),
			Bold: Bool(true), Underline: Bool(true),
			DoubleWidth: Bool(true), DoubleHeight: Bool(true),
		}, false},
		{"bad align", StyleSet{Align: Alignment("middle").Ptr()}, true},
		{"bad font", StyleSet{Font: Font("c").Ptr()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.styles.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateSchema))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStyleSetIsZero(t *testing.T) {
	assert.True(t, StyleSet{}.IsZero())
	assert.False(t, StyleSet{Bold: Bool(false)}.IsZero())
}
