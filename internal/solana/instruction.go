package solana

import "encoding/binary"

// AccountMeta describes how an instruction touches an account.
type AccountMeta struct {
	PubKey     PublicKey
	IsSigner   bool
	IsWritable bool
}

// Instruction is a single program invocation within a transaction.
type Instruction struct {
	ProgramID PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// SPL token program instruction tag for TransferChecked.
const tokenInstructionTransferChecked = 12

// NewTransferCheckedInstruction moves token base units between accounts,
// with the mint and decimals included so the program can verify them.
func NewTransferCheckedInstruction(source, mint, dest, owner PublicKey, amount uint64, decimals uint8) Instruction {
	data := make([]byte, 10)
	data[0] = tokenInstructionTransferChecked
	binary.LittleEndian.PutUint64(data[1:9], amount)
	data[9] = decimals

	return Instruction{
		ProgramID: TokenProgramID,
		Accounts: []AccountMeta{
			{PubKey: source, IsWritable: true},
			{PubKey: mint},
			{PubKey: dest, IsWritable: true},
			{PubKey: owner, IsSigner: true},
		},
		Data: data,
	}
}

// NewCreateAssociatedTokenAccountInstruction creates the associated token
// account for owner/mint, funded by payer.
func NewCreateAssociatedTokenAccountInstruction(payer, ata, owner, mint PublicKey) Instruction {
	return Instruction{
		ProgramID: AssociatedTokenProgramID,
		Accounts: []AccountMeta{
			{PubKey: payer, IsSigner: true, IsWritable: true},
			{PubKey: ata, IsWritable: true},
			{PubKey: owner},
			{PubKey: mint},
			{PubKey: SystemProgramID},
			{PubKey: TokenProgramID},
		},
	}
}
