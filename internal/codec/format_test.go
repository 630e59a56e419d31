package codec

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNull(t *testing.T) {
	var n *big.Int
	var r *Record
	var m map[string]any
	assert.Equal(t, "null", Format(nil))
	assert.Equal(t, "null", Format(n))
	assert.Equal(t, "null", Format(r))
	assert.Equal(t, "null", Format(m))
}

func TestFormatIntegers(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{big.NewInt(0), "0"},
		{big.NewInt(999), "999"},
		{big.NewInt(1000), "1,000"},
		{big.NewInt(-1234567), "-1,234,567"},
		{big.NewInt(100000), "100,000"},
		{uint8(255), "255"},
		{int64(-1000), "-1,000"},
		{uint64(18446744073709551615), "18,446,744,073,709,551,615"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in))
	}
}

func TestFormatIntegerWrappers(t *testing.T) {
	assert.Equal(t, "1,000,000", Format((*hexutil.Big)(big.NewInt(1_000_000))))
	assert.Equal(t, "-4,096", Format((*hexutil.Big)(big.NewInt(-4096))))
	assert.Equal(t, "12,345,678", Format(json.Number("12345678")))
	assert.Equal(t, "-1,000", Format(json.Number("-1000")))
	assert.Equal(t, "1.5e3", Format(json.Number("1.5e3")))

	var nilBig *hexutil.Big
	assert.Equal(t, "null", Format(nilBig))

	got, err := EncodeJSON([]any{(*hexutil.Big)(big.NewInt(255)), json.Number("70000"), json.Number("0.5")})
	require.NoError(t, err)
	assert.Equal(t, `["255","70000",0.5]`, got)
}

func TestFormatGroupingStripsBack(t *testing.T) {
	for _, s := range []string{"1", "12", "123", "1234", "-98765", "115792089237316195423570985008687907853269984665640564039457584007913129639935"} {
		n, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)
		assert.Equal(t, s, strings.ReplaceAll(Format(n), ",", ""))
	}
}

func TestFormatCustomSeparator(t *testing.T) {
	f := Formatter{GroupSeparator: "_"}
	assert.Equal(t, "1_000_000", f.Format(big.NewInt(1000000)))
	assert.Equal(t, "1,000,000", Formatter{}.Format(big.NewInt(1000000)))
}

func TestFormatScalars(t *testing.T) {
	assert.Equal(t, "true", Format(true))
	assert.Equal(t, "false", Format(false))
	assert.Equal(t, "hello", Format("hello"))
	assert.Equal(t, "", Format(""))
	assert.Equal(t, "0xdeadbeef", Format([]byte{0xde, 0xad, 0xbe, 0xef}))

	addr := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", Format(addr))
}

func TestFormatRecord(t *testing.T) {
	r := record(
		"owner", "0x00000000000000000000000000000000000000aa",
		"balance", big.NewInt(1234567),
		"active", true,
		"tags", []any{"a", "<b>"},
	)
	want := `{
  "owner": "0x00000000000000000000000000000000000000aa",
  "balance": "1234567",
  "active": true,
  "tags": [
    "a",
    "<b>"
  ]
}`
	assert.Equal(t, want, Format(r))
}

func TestFormatSlices(t *testing.T) {
	got := Format([]any{big.NewInt(1), big.NewInt(2000)})
	assert.Equal(t, "[\n  \"1\",\n  \"2000\"\n]", got)
	assert.Equal(t, "[]", Format([]any{}))
}

func TestFormatForeignStruct(t *testing.T) {
	v := struct {
		Amount *big.Int
		Who    common.Address
		hidden int
	}{big.NewInt(5), common.HexToAddress("0x01"), 9}
	got := Format(v)
	assert.JSONEq(t, `{"Amount":"5","Who":"0x0000000000000000000000000000000000000001"}`, got)
	assert.Less(t, strings.Index(got, "Amount"), strings.Index(got, "Who"))
}

func TestEncodeJSON(t *testing.T) {
	n, _ := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	got, err := EncodeJSON(record("b", n, "a", []any{true, "x"}, "c", nil))
	require.NoError(t, err)
	assert.Equal(t, `{"b":"340282366920938463463374607431768211456","a":[true,"x"],"c":null}`, got)

	got, err = EncodeJSON([4]byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, `"0x01020304"`, got)
}

func TestFormatParseRoundTrip(t *testing.T) {
	p := Param{Type: "tuple", Components: []Param{
		{Name: "id", Type: "uint256"},
		{Name: "holders", Type: "address[]"},
		{Name: "meta", Type: "tuple", Components: []Param{
			{Name: "label", Type: "string"},
			{Name: "delta", Type: "int32"},
		}},
	}}
	raw := `{"id":"98765432109876543210","holders":["0x00000000000000000000000000000000000000aa"],"meta":{"label":"x","delta":"-3"}}`
	first := Parse(raw, p)
	encoded, err := EncodeJSON(first)
	require.NoError(t, err)
	assert.Equal(t, raw, encoded)
	assertValue(t, first, Parse(encoded, p))
}
