package script

import (
	"github.com/rubin-chain/corenode/bigint"
	"github.com/rubin-chain/corenode/secp256k1"
)

// maxMultisigKeys bounds CHECKMULTISIG's pubkey count, matching the
// reference client's limit.
const maxMultisigKeys = 20

// execCheckSig implements OP_CHECKSIG/OP_CHECKSIGVERIFY (spec.md §4.5):
// pop pubkey then signature, build the sighash over the subscript
// starting at the last CODESEPARATOR with the signature pushdata
// removed, and push whether ECDSA verification succeeds.
func (e *Engine) execCheckSig(verify bool, raw []byte, lastCodeSep int) error {
	s := &e.stack
	pubKeyBytes, err := s.pop()
	if err != nil {
		return err
	}
	sigBytes, err := s.pop()
	if err != nil {
		return err
	}

	ok := e.verifyOne(sigBytes, pubKeyBytes, raw, lastCodeSep)
	if verify {
		if !ok {
			return scriptErr(ErrCheckSigVerifyFailed, "CHECKSIGVERIFY failed")
		}
		return nil
	}
	s.pushBool(ok)
	return nil
}

// verifyOne parses sigBytes/pubKeyBytes and checks the ECDSA signature
// against the input's sighash. Malformed encodings verify false rather
// than aborting the script, matching the reference client's behavior
// absent the strict-DER/low-S policy flags.
func (e *Engine) verifyOne(sigBytes, pubKeyBytes []byte, raw []byte, lastCodeSep int) bool {
	if len(sigBytes) == 0 {
		return false
	}
	sig, err := secp256k1.ParseDERSignature(sigBytes)
	if err != nil {
		return false
	}
	pub, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false
	}
	subscript, err := buildSubscript(raw, lastCodeSep, sigBytes)
	if err != nil {
		return false
	}
	z := calcSignatureHash(e.tx, e.inIdx, subscript, sig.HashType)
	return secp256k1.Verify(sig, pub, z)
}

// execCheckMultisig implements OP_CHECKMULTISIG/OP_CHECKMULTISIGVERIFY
// (spec.md §4.5): pop the pubkey count and pubkeys, the signature count
// and signatures, then the historical extra dummy value. Signatures are
// walked in order against pubkeys in order, skipping pubkeys a
// signature doesn't match, succeeding iff every signature is satisfied
// before the pubkeys run out.
func (e *Engine) execCheckMultisig(verify bool, raw []byte, lastCodeSep int) error {
	s := &e.stack
	nNum, err := s.popInt(defaultMaxNumSize)
	if err != nil {
		return err
	}
	n := int(nNum)
	if n < 0 || n > maxMultisigKeys {
		return scriptErr(ErrInvalidPush, "CHECKMULTISIG pubkey count %d out of range", n)
	}
	pubKeys := make([][]byte, n)
	for i := n - 1; i >= 0; i-- {
		v, err := s.pop()
		if err != nil {
			return err
		}
		pubKeys[i] = v
	}

	mNum, err := s.popInt(defaultMaxNumSize)
	if err != nil {
		return err
	}
	m := int(mNum)
	if m < 0 || m > n {
		return scriptErr(ErrInvalidPush, "CHECKMULTISIG signature count %d out of range", m)
	}
	sigs := make([][]byte, m)
	for i := m - 1; i >= 0; i-- {
		v, err := s.pop()
		if err != nil {
			return err
		}
		sigs[i] = v
	}

	// The extra item popped here is the historical CHECKMULTISIG
	// off-by-one bug: an unused value every caller must supply.
	if _, err := s.pop(); err != nil {
		return err
	}

	subscript := raw
	for _, sig := range sigs {
		subscript, err = buildSubscript(subscript, firstSubscriptOffset(subscript, lastCodeSep), sig)
		if err != nil {
			return err
		}
		lastCodeSep = 0
	}

	sigIdx, pubIdx := 0, 0
	ok := true
	for sigIdx < m {
		if m-sigIdx > n-pubIdx {
			ok = false
			break
		}
		z := calcSignatureHash(e.tx, e.inIdx, subscript, trailingHashType(sigs[sigIdx]))
		if verifyParsed(sigs[sigIdx], pubKeys[pubIdx], z) {
			sigIdx++
		}
		pubIdx++
	}
	if sigIdx < m {
		ok = false
	}

	if verify {
		if !ok {
			return scriptErr(ErrCheckMultisigVerifyFailed, "CHECKMULTISIGVERIFY failed")
		}
		return nil
	}
	s.pushBool(ok)
	return nil
}

func firstSubscriptOffset(subscript []byte, lastCodeSep int) int {
	if lastCodeSep < 0 || lastCodeSep > len(subscript) {
		return 0
	}
	return lastCodeSep
}

func trailingHashType(sig []byte) byte {
	if len(sig) == 0 {
		return 0
	}
	return sig[len(sig)-1]
}

func verifyParsed(sigBytes, pubKeyBytes []byte, z bigint.Uint256) bool {
	if len(sigBytes) == 0 {
		return false
	}
	sig, err := secp256k1.ParseDERSignature(sigBytes)
	if err != nil {
		return false
	}
	pub, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false
	}
	return secp256k1.Verify(sig, pub, z)
}
