package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "postgres time", input: "15:00:00", want: "15:00"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "after end of day", input: "24:30", wantErr: true},
		{name: "bad minutes", input: "10:60", wantErr: true},
		{name: "single digit hour", input: "9:30", wantErr: true},
		{name: "non-zero seconds", input: "10:00:15", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	ten := MustTimeString("10:00")
	noon := MustTimeString("12:00")

	assert.True(t, ten.IsBefore(noon))
	assert.True(t, noon.IsAfter(ten))
	assert.False(t, ten.IsBefore(ten))

	next, err := ten.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), next)

	_, err = MustTimeString("23:30").AddMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("17:00:00")))
	assert.Equal(t, TimeString("17:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:15"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestNewMoneyFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    Money
		wantErr bool
	}{
		{input: "100", want: 10000},
		{input: "100.5", want: 10050},
		{input: "49.99", want: 4999},
		{input: "0.01", want: 1},
		{input: "-3.10", want: -310},
		{input: "1.234", wantErr: true},
		{input: "1.", wantErr: true},
		{input: ".5", wantErr: true},
		{input: "1.+5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewMoneyFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMoney)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	var payload struct {
		Amount Money `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount": 50.00}`), &payload))
	assert.Equal(t, Money(5000), payload.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount": "49.99"}`), &payload))
	assert.Equal(t, Money(4999), payload.Amount)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": 49.99}`, string(out))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan([]byte("100.00")))
	assert.Equal(t, Money(10000), m)

	require.NoError(t, m.Scan("250.500"))
	assert.Equal(t, Money(25050), m)

	require.NoError(t, m.Scan(nil))
	assert.Equal(t, Money(0), m)
}
