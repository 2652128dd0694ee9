package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionSize(t *testing.T) {
	type args struct {
		entryPrice float64
		stopPrice  float64
		capital    float64
		maxRiskPct float64
	}
	tests := []struct {
		name    string
		args    args
		want    float64
		wantErr error
	}{
		{
			name: "risk based size below capital ceiling",
			args: args{entryPrice: 100, stopPrice: 99, capital: 10000, maxRiskPct: 2},
			// riskAmount 200 / perUnitRisk 1 = 200 units, ceiling 25 units
			want: 25,
		},
		{
			name: "ceiling not reached with wide stop",
			args: args{entryPrice: 100, stopPrice: 50, capital: 10000, maxRiskPct: 2},
			// riskAmount 200 / perUnitRisk 50 = 4 units
			want: 4,
		},
		{
			name: "short direction stop above entry",
			args: args{entryPrice: 100, stopPrice: 101.5, capital: 10000, maxRiskPct: 2},
			want: 10000 * 0.25 / 100,
		},
		{
			name:    "entry equals stop has no defined risk",
			args:    args{entryPrice: 100, stopPrice: 100, capital: 10000, maxRiskPct: 2},
			wantErr: ErrInvalidRiskInput,
		},
		{
			name:    "zero capital",
			args:    args{entryPrice: 100, stopPrice: 99, capital: 0, maxRiskPct: 2},
			wantErr: ErrInvalidRiskInput,
		},
		{
			name:    "zero entry price",
			args:    args{entryPrice: 0, stopPrice: 99, capital: 10000, maxRiskPct: 2},
			wantErr: ErrInvalidRiskInput,
		},
		{
			name:    "zero risk percentage",
			args:    args{entryPrice: 100, stopPrice: 99, capital: 10000, maxRiskPct: 0},
			wantErr: ErrInvalidRiskInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PositionSize(tt.args.entryPrice, tt.args.stopPrice, tt.args.capital, tt.args.maxRiskPct)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPositionSizeBounds(t *testing.T) {
	cases := []struct {
		entry, stop, capital, maxRiskPct float64
	}{
		{100, 98.5, 10000, 2},
		{50, 49, 2500, 5},
		{20000, 19500, 100000, 1},
		{3.5, 3.45, 800, 10},
		{100, 150, 10000, 100},
	}

	for _, c := range cases {
		size, err := PositionSize(c.entry, c.stop, c.capital, c.maxRiskPct)
		require.NoError(t, err)

		assert.LessOrEqual(t, size*c.entry, c.capital*0.25+1e-9,
			"position exposure must stay within 25%% of capital")
		assert.LessOrEqual(t, size*math.Abs(c.entry-c.stop), c.capital*(c.maxRiskPct/100)+1e-9,
			"amount at risk must stay within the per-trade budget")
	}
}
