package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Due Date `json:"due"`
	}

	tests := []struct {
		name    string
		data    string
		want    Date
		wantOut string
		wantErr bool
	}{
		{name: "date", data: `{"due":"2021-03-04"}`, want: NewDate(2021, 3, 4), wantOut: `{"due":"2021-03-04"}`},
		{name: "null", data: `{"due":null}`, wantOut: `{"due":null}`},
		{name: "empty", data: `{"due":""}`, wantOut: `{"due":null}`},
		{name: "datetime", data: `{"due":"2021-03-04T10:00:00Z"}`, wantErr: true},
		{name: "garbage", data: `{"due":"lol"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := json.Unmarshal([]byte(tt.data), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(p.Due), "got %s, want %s", p.Due, tt.want)

			out, err := json.Marshal(p)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantOut, string(out))
		})
	}
}

func TestDate_Scan(t *testing.T) {
	want := NewDate(2021, 3, 4)
	tests := []struct {
		name string
		src  interface{}
		want Date
	}{
		{name: "nil", src: nil},
		{name: "time", src: time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), want: want},
		{name: "string", src: "2021-03-04", want: want},
		{name: "timestamp string", src: "2021-03-04 00:00:00+00:00", want: want},
		{name: "bytes", src: []byte("2021-03-04"), want: want},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.True(t, tt.want.Equal(d), "got %s, want %s", d, tt.want)
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = NewDate(2021, 12, 25).Value()
	require.NoError(t, err)
	assert.Equal(t, "2021-12-25", v)
}

func TestToday(t *testing.T) {
	NowFunc = func() time.Time { return time.Date(2021, 3, 4, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600)) }
	defer func() { NowFunc = time.Now }()

	// 23:30 at UTC-2 is already the 5th in UTC
	assert.Equal(t, "2021-03-05", Today().String())
}
