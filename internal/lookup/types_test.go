package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AbdulBotz/nagi-osint-bot/internal/apperr"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name       string
		lookupType Type
		input      string
		want       string
		wantErr    bool
	}{
		{name: "mobile valid", lookupType: TypeMobile, input: "9876543210", want: "9876543210"},
		{name: "mobile trims whitespace", lookupType: TypeMobile, input: "  9876543210 ", want: "9876543210"},
		{name: "mobile too short", lookupType: TypeMobile, input: "98765", wantErr: true},
		{name: "mobile letters", lookupType: TypeMobile, input: "98765abcde", wantErr: true},
		{name: "gst valid", lookupType: TypeGST, input: "09AAYFK4129N1ZF", want: "09AAYFK4129N1ZF"},
		{name: "gst lowercased input", lookupType: TypeGST, input: "09aayfk4129n1zf", want: "09AAYFK4129N1ZF"},
		{name: "gst wrong length", lookupType: TypeGST, input: "09AAYFK4129N1Z", wantErr: true},
		{name: "gst missing Z marker", lookupType: TypeGST, input: "09AAYFK4129N1XF", wantErr: true},
		{name: "ifsc valid", lookupType: TypeIFSC, input: "ICIC0001206", want: "ICIC0001206"},
		{name: "ifsc lowercase", lookupType: TypeIFSC, input: "icic0001206", want: "ICIC0001206"},
		{name: "ifsc missing zero", lookupType: TypeIFSC, input: "ICIC1001206", wantErr: true},
		{name: "pincode valid", lookupType: TypePincode, input: "110001", want: "110001"},
		{name: "pincode too long", lookupType: TypePincode, input: "1100011", wantErr: true},
		{name: "vehicle valid", lookupType: TypeVehicle, input: "MH12DE1433", want: "MH12DE1433"},
		{name: "vehicle lowercase", lookupType: TypeVehicle, input: "mh12de1433", want: "MH12DE1433"},
		{name: "vehicle garbage", lookupType: TypeVehicle, input: "12MHDE", wantErr: true},
		{name: "imei valid", lookupType: TypeIMEI, input: "123456789012345", want: "123456789012345"},
		{name: "imei short", lookupType: TypeIMEI, input: "12345678901234", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Validate(tc.lookupType, tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Equal(t, apperr.KindInvalidFormat, apperr.KindOf(err))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidate_Pure(t *testing.T) {
	first, err1 := Validate(TypeMobile, "9876543210")
	second, err2 := Validate(TypeMobile, "9876543210")

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestTypeForMode(t *testing.T) {
	lookupType, ok := TypeForMode("mobile")
	assert.True(t, ok)
	assert.Equal(t, TypeMobile, lookupType)

	_, ok = TypeForMode("")
	assert.False(t, ok)
}
