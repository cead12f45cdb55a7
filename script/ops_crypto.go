package script

import (
	"bytes"
	"crypto/sha1"
	"errors"

	"github.com/rubin-chain/corenode/hash"
)

var errNotCryptoOp = errors.New("not a crypto op")

func (e *Engine) execCryptoOp(op Op) error {
	s := &e.stack
	switch op {
	case OP_EQUAL, OP_EQUALVERIFY:
		b, err := s.pop()
		if err != nil {
			return err
		}
		a, err := s.pop()
		if err != nil {
			return err
		}
		equal := bytes.Equal(a, b)
		if op == OP_EQUALVERIFY {
			if !equal {
				return scriptErr(ErrEqualVerifyFailed, "EQUALVERIFY failed")
			}
			return nil
		}
		s.pushBool(equal)
	case OP_RIPEMD160:
		v, err := s.pop()
		if err != nil {
			return err
		}
		sum := hash.Sum160(v)
		s.push(sum[:])
	case OP_SHA1:
		v, err := s.pop()
		if err != nil {
			return err
		}
		sum := sha1.Sum(v)
		s.push(sum[:])
	case OP_SHA256:
		v, err := s.pop()
		if err != nil {
			return err
		}
		sum := hash.Sum256(v)
		s.push(sum[:])
	case OP_HASH160:
		v, err := s.pop()
		if err != nil {
			return err
		}
		sum := hash.Hash160(v)
		s.push(sum[:])
	case OP_HASH256:
		v, err := s.pop()
		if err != nil {
			return err
		}
		sum := hash.Sum256d(v)
		s.push(sum[:])
	default:
		return errNotCryptoOp
	}
	return nil
}
