package persist

import (
	"fmt"
	"io"
	"math"

	"github.com/tuannm99/reldb/internal/bx"
	"github.com/tuannm99/reldb/internal/scalar"
)

func writeScalar(w io.Writer, v scalar.Scalar) error {
	switch v.Domain() {
	case scalar.I8, scalar.I16, scalar.I32, scalar.I64:
		var buf [8]byte
		bx.PutU64(buf[:], uint64(v.Int()))
		_, err := w.Write(buf[:])
		return err
	case scalar.F32, scalar.F64:
		var buf [8]byte
		bx.PutU64(buf[:], math.Float64bits(v.Float()))
		_, err := w.Write(buf[:])
		return err
	case scalar.Char:
		var buf [4]byte
		bx.PutU32(buf[:], uint32(v.Rune()))
		_, err := w.Write(buf[:])
		return err
	case scalar.Str:
		b := []byte(v.Text())
		var lenBuf [4]byte
		bx.PutU32(lenBuf[:], uint32(len(b)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}
		_, err := w.Write(b)
		return err
	default:
		return fmt.Errorf("unsupported domain %s", v.Domain())
	}
}

func readScalar(r io.Reader, dom scalar.Domain) (scalar.Scalar, error) {
	switch dom {
	case scalar.I8, scalar.I16, scalar.I32, scalar.I64:
		n, err := readI64(r)
		if err != nil {
			return scalar.Scalar{}, err
		}
		switch dom {
		case scalar.I8:
			return scalar.I8Val(int8(n)), nil
		case scalar.I16:
			return scalar.I16Val(int16(n)), nil
		case scalar.I32:
			return scalar.I32Val(int32(n)), nil
		default:
			return scalar.I64Val(n), nil
		}
	case scalar.F32, scalar.F64:
		f, err := readF64(r)
		if err != nil {
			return scalar.Scalar{}, err
		}
		if dom == scalar.F32 {
			return scalar.F32Val(float32(f)), nil
		}
		return scalar.F64Val(f), nil
	case scalar.Char:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return scalar.Scalar{}, err
		}
		return scalar.CharVal(rune(bx.U32(buf[:]))), nil
	case scalar.Str:
		var lenBuf [4]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return scalar.Scalar{}, err
		}
		n := bx.U32(lenBuf[:])
		b := make([]byte, n)
		if _, err := io.ReadFull(r, b); err != nil {
			return scalar.Scalar{}, err
		}
		return scalar.StrVal(string(b)), nil
	default:
		return scalar.Scalar{}, fmt.Errorf("unsupported domain %d", dom)
	}
}

func readI64(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return bx.I64(buf[:]), nil
}

func readF64(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(bx.U64(buf[:])), nil
}
