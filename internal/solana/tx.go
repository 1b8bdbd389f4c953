package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
)

// SignatureLength is the byte length of an ed25519 signature.
const SignatureLength = 64

// Signature is a transaction signature.
type Signature [SignatureLength]byte

// Message is a compiled legacy transaction message: the account table,
// the recent blockhash and the instructions referencing both by index.
type Message struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
	AccountKeys                 []PublicKey
	RecentBlockhash             PublicKey
	Instructions                []CompiledInstruction
}

// CompiledInstruction references accounts and program by position in the
// message account table.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	AccountIndexes []uint8
	Data           []byte
}

// Transaction is a signed legacy transaction ready for submission.
type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewMessage compiles instructions into a legacy message. The fee payer
// is always the first account; duplicate references are merged with their
// privileges combined, and accounts are laid out in the order the runtime
// requires: writable signers, readonly signers, writable non-signers,
// readonly non-signers.
func NewMessage(payer PublicKey, recentBlockhash PublicKey, instructions []Instruction) (Message, error) {
	if len(instructions) == 0 {
		return Message{}, fmt.Errorf("message requires at least one instruction")
	}

	metas := []AccountMeta{{PubKey: payer, IsSigner: true, IsWritable: true}}
	for _, ix := range instructions {
		metas = append(metas, ix.Accounts...)
		metas = append(metas, AccountMeta{PubKey: ix.ProgramID})
	}

	merged := make([]AccountMeta, 0, len(metas))
	byKey := make(map[PublicKey]int)
	for _, m := range metas {
		if i, ok := byKey[m.PubKey]; ok {
			merged[i].IsSigner = merged[i].IsSigner || m.IsSigner
			merged[i].IsWritable = merged[i].IsWritable || m.IsWritable
			continue
		}
		byKey[m.PubKey] = len(merged)
		merged = append(merged, m)
	}

	// Payer stays at index 0; the rest buckets by privilege, keeping the
	// first-seen order inside each bucket.
	var ordered []AccountMeta
	for _, want := range []struct{ signer, writable bool }{
		{true, true}, {true, false}, {false, true}, {false, false},
	} {
		for _, m := range merged {
			if m.IsSigner == want.signer && m.IsWritable == want.writable {
				ordered = append(ordered, m)
			}
		}
	}

	msg := Message{RecentBlockhash: recentBlockhash}
	index := make(map[PublicKey]uint8, len(ordered))
	for i, m := range ordered {
		msg.AccountKeys = append(msg.AccountKeys, m.PubKey)
		index[m.PubKey] = uint8(i)
		if m.IsSigner {
			msg.NumRequiredSignatures++
			if !m.IsWritable {
				msg.NumReadonlySignedAccounts++
			}
		} else if !m.IsWritable {
			msg.NumReadonlyUnsignedAccounts++
		}
	}

	for _, ix := range instructions {
		ci := CompiledInstruction{
			ProgramIDIndex: index[ix.ProgramID],
			Data:           ix.Data,
		}
		for _, a := range ix.Accounts {
			ci.AccountIndexes = append(ci.AccountIndexes, index[a.PubKey])
		}
		msg.Instructions = append(msg.Instructions, ci)
	}

	return msg, nil
}

// Serialize renders the message in wire format.
func (m Message) Serialize() []byte {
	var buf bytes.Buffer
	buf.WriteByte(m.NumRequiredSignatures)
	buf.WriteByte(m.NumReadonlySignedAccounts)
	buf.WriteByte(m.NumReadonlyUnsignedAccounts)
	writeCompactU16(&buf, len(m.AccountKeys))
	for _, k := range m.AccountKeys {
		buf.Write(k[:])
	}
	buf.Write(m.RecentBlockhash[:])
	writeCompactU16(&buf, len(m.Instructions))
	for _, ix := range m.Instructions {
		buf.WriteByte(ix.ProgramIDIndex)
		writeCompactU16(&buf, len(ix.AccountIndexes))
		for _, i := range ix.AccountIndexes {
			buf.WriteByte(i)
		}
		writeCompactU16(&buf, len(ix.Data))
		buf.Write(ix.Data)
	}
	return buf.Bytes()
}

// NewTransaction wraps a message with empty signature slots for each
// required signer.
func NewTransaction(msg Message) *Transaction {
	return &Transaction{
		Signatures: make([]Signature, msg.NumRequiredSignatures),
		Message:    msg,
	}
}

// Sign fills the signature slot for each private key whose public half
// appears among the message signers.
func (t *Transaction) Sign(keys ...ed25519.PrivateKey) error {
	payload := t.Message.Serialize()
	for _, key := range keys {
		pub, err := PublicKeyFromBytes(key.Public().(ed25519.PublicKey))
		if err != nil {
			return err
		}
		slot := -1
		for i := 0; i < int(t.Message.NumRequiredSignatures); i++ {
			if t.Message.AccountKeys[i] == pub {
				slot = i
				break
			}
		}
		if slot < 0 {
			return fmt.Errorf("key %s is not a required signer", pub)
		}
		copy(t.Signatures[slot][:], ed25519.Sign(key, payload))
	}
	return nil
}

// Serialize renders the full signed transaction in wire format.
func (t *Transaction) Serialize() []byte {
	var buf bytes.Buffer
	writeCompactU16(&buf, len(t.Signatures))
	for _, s := range t.Signatures {
		buf.Write(s[:])
	}
	buf.Write(t.Message.Serialize())
	return buf.Bytes()
}

// SerializeBase64 renders the signed transaction the way the RPC
// sendTransaction method expects it.
func (t *Transaction) SerializeBase64() string {
	return base64.StdEncoding.EncodeToString(t.Serialize())
}

// writeCompactU16 appends the Solana shortvec length encoding: 7 bits per
// byte, high bit set on all but the last.
func writeCompactU16(buf *bytes.Buffer, n int) {
	v := uint16(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			buf.WriteByte(b)
			return
		}
		buf.WriteByte(b | 0x80)
	}
}
