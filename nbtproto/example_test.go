package nbtproto_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-nbt/nbt/mutf8"
	"github.com/go-nbt/nbt/nbtproto"
)

// playerData is a hand-written example of the type a code generator
// would otherwise produce: it reads itself directly out of a compound's
// fields instead of going through a generic tree.
type playerData struct {
	Name      string
	Health    int32
	sawName   bool
	sawHealth bool
}

func (p *playerData) UpdatePartial(name mutf8.Str, kind byte, c *nbtproto.Cursor) (bool, error) {
	switch name.String() {
	case "Name":
		if kind != 0x08 {
			return false, &nbtproto.MismatchedFieldTypeError{Field: "Name", Want: 0x08, Got: kind}
		}
		s, err := c.ReadString()
		if err != nil {
			return false, err
		}
		p.Name = s.String()
		p.sawName = true
		return true, nil
	case "Health":
		if kind != 0x03 {
			return false, &nbtproto.MismatchedFieldTypeError{Field: "Health", Want: 0x03, Got: kind}
		}
		v, err := c.ReadInt()
		if err != nil {
			return false, err
		}
		p.Health = v
		p.sawHealth = true
		return true, nil
	default:
		return false, nil // unrecognized field: let the driver skip it
	}
}

func (p *playerData) FromPartial() error {
	if !p.sawName {
		return &nbtproto.MissingFieldError{Field: "Name"}
	}
	if !p.sawHealth {
		return &nbtproto.MissingFieldError{Field: "Health"}
	}
	return nil
}

func writeField(buf *bytes.Buffer, name string) {
	binary.Write(buf, binary.BigEndian, uint16(len(name)))
	buf.WriteString(name)
}

func TestReadPartialSkipsUnknownField(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeField(&buf, "") // root name

	buf.WriteByte(0x08) // Name
	writeField(&buf, "Name")
	writeField(&buf, "Notch")

	buf.WriteByte(0x03) // Health
	writeField(&buf, "Health")
	binary.Write(&buf, binary.BigEndian, int32(20))

	buf.WriteByte(0x0B) // UnknownField, an Int Array playerData never asks for
	writeField(&buf, "Inventory")
	binary.Write(&buf, binary.BigEndian, int32(2))
	binary.Write(&buf, binary.BigEndian, int32(1))
	binary.Write(&buf, binary.BigEndian, int32(2))

	buf.WriteByte(0x00) // end root

	var p playerData
	require.NoError(t, nbtproto.ReadPartial(buf.Bytes(), &p))
	require.Equal(t, "Notch", p.Name)
	require.Equal(t, int32(20), p.Health)
}

func TestReadPartialReportsMissingField(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeField(&buf, "")
	buf.WriteByte(0x08)
	writeField(&buf, "Name")
	writeField(&buf, "Notch")
	buf.WriteByte(0x00)

	var p playerData
	err := nbtproto.ReadPartial(buf.Bytes(), &p)
	var target *nbtproto.MissingFieldError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "Health", target.Field)
}

func TestReadPartialReportsMismatchedType(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeField(&buf, "")
	buf.WriteByte(0x08) // Health written as a String instead of an Int
	writeField(&buf, "Health")
	writeField(&buf, "oops")
	buf.WriteByte(0x00)

	var p playerData
	err := nbtproto.ReadPartial(buf.Bytes(), &p)
	var target *nbtproto.MismatchedFieldTypeError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "Health", target.Field)
}
