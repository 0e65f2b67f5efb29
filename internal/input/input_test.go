package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		src     Sources
		want    string
		wantErr error
	}{
		{
			name: "manual wins over clipboard",
			src: Sources{
				Manual:    "https://youtu.be/manual",
				Clipboard: "https://youtu.be/clip",
			},
			want: "https://youtu.be/manual",
		},
		{
			name: "shared text with surrounding words",
			src:  Sources{Shared: []string{"Watch this: https://www.youtube.com/watch?v=abc&t=5 so good"}},
			want: "https://www.youtube.com/watch?v=abc&t=5",
		},
		{
			name: "skips non video shared items",
			src:  Sources{Shared: []string{"https://example.com", "youtu.be/xyz"}},
			want: "youtu.be/xyz",
		},
		{
			name: "clipboard fallback",
			src:  Sources{Manual: "  ", Clipboard: "https://m.youtube.com/watch?v=m1"},
			want: "https://m.youtube.com/watch?v=m1",
		},
		{
			name:    "nothing recognisable",
			src:     Sources{Manual: "hello", Clipboard: "https://vimeo.com/1"},
			wantErr: ErrNoInputDetected,
		},
		{
			name:    "all empty",
			wantErr: ErrNoInputDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.src)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
