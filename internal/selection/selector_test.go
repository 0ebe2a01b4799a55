package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	all := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name      string
		rng, list string
		want      []string
		wantErr   bool
	}{
		{name: "no selection", want: all},
		{name: "range", rng: "2-4", want: []string{"b", "c", "d"}},
		{name: "range clipped", rng: "4-10", want: []string{"d", "e"}},
		{name: "range past end", rng: "7-9", want: []string{}},
		{name: "range wins", rng: "1-1", list: "5", want: []string{"a"}},
		{name: "list", list: "5, 1,,3", want: []string{"e", "a", "c"}},
		{name: "list skips out of range", list: "0,2,6", want: []string{"b"}},
		{name: "bad range", rng: "3", wantErr: true},
		{name: "reversed range", rng: "4-2", wantErr: true},
		{name: "bad list", list: "1,x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(all, tt.rng, tt.list)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
