// Package purchase implements the USDC package purchase: an on-chain
// transfer to the treasury followed by backend verification. The two
// phases are strictly ordered; any chain failure aborts before the
// backend is ever told about the transaction, and EP is never credited
// optimistically.
package purchase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/kudilabs/kudi-client/internal/client/api"
	"github.com/kudilabs/kudi-client/internal/common"
	"github.com/kudilabs/kudi-client/internal/logging"
	"github.com/kudilabs/kudi-client/internal/solana"
	"github.com/kudilabs/kudi-client/internal/solana/rpc"
	"github.com/kudilabs/kudi-client/internal/wallet"
)

// Package is one of the fixed USDC packages.
type Package string

const (
	PackageStarter Package = "STARTER"
	PackagePro     Package = "PRO"
	PackageElite   Package = "ELITE"
)

// Packages lists the purchasable packages in price order.
var Packages = []Package{PackageStarter, PackagePro, PackageElite}

// usdcDecimals is the on-chain decimal count of the USDC mint.
const usdcDecimals = 6

// ErrUnknownPackage means the package name is not purchasable.
var ErrUnknownPackage = errors.New("unknown package")

// AmountUSDC returns the package price in whole USDC.
func (p Package) AmountUSDC() (float64, error) {
	switch p {
	case PackageStarter:
		return 5, nil
	case PackagePro:
		return 50, nil
	case PackageElite:
		return 100, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownPackage, p)
}

// BaseUnits converts a USDC amount to mint base units.
func BaseUnits(amountUSDC float64) uint64 {
	return uint64(math.Round(amountUSDC * math.Pow10(usdcDecimals)))
}

// Receipt describes a completed purchase. Signature is always set once
// the transfer confirmed on chain, even if backend verification fails
// afterwards, so the user can hand it to support.
type Receipt struct {
	Package    Package
	AmountUSDC float64
	Signature  string
	Activated  bool
}

// ChainClient is the subset of the RPC client the flow needs.
type ChainClient interface {
	GetAccountInfo(ctx context.Context, address string) (*rpc.AccountInfo, error)
	GetLatestBlockhash(ctx context.Context) (*rpc.LatestBlockhash, error)
	SendTransaction(ctx context.Context, txBase64 string) (string, error)
	WaitForConfirmation(ctx context.Context, signature string) error
}

// Flow runs purchases for one wallet.
type Flow struct {
	api      api.Client
	wallet   wallet.Provider
	chain    ChainClient
	summary  *api.Projection
	mint     solana.PublicKey
	treasury solana.PublicKey
	log      logging.Logger
}

func NewFlow(apiClient api.Client, w wallet.Provider, chain ChainClient,
	summary *api.Projection, mint, treasury solana.PublicKey, log logging.Logger) *Flow {
	return &Flow{
		api:      apiClient,
		wallet:   w,
		chain:    chain,
		summary:  summary,
		mint:     mint,
		treasury: treasury,
		log:      log,
	}
}

// Buy executes both phases for the package. The returned receipt carries
// the transaction signature as soon as phase 1 confirmed; Activated is
// true only after the backend accepted the transfer in phase 2.
func (f *Flow) Buy(ctx context.Context, pkg Package) (*Receipt, error) {
	amount, err := pkg.AmountUSDC()
	if err != nil {
		return nil, err
	}

	sig, err := f.transfer(ctx, amount)
	if err != nil {
		// phase 1 failed: the backend must never hear about this attempt
		return nil, err
	}

	receipt := &Receipt{Package: pkg, AmountUSDC: amount, Signature: sig}

	res, err := f.api.VerifyPurchase(ctx, sig, amount)
	if err != nil {
		return receipt, fmt.Errorf("purchase verification failed: %w", err)
	}
	if !res.Ok {
		reason := res.Error
		if reason == "" {
			reason = "unknown"
		}
		return receipt, fmt.Errorf("purchase verification rejected: %s", reason)
	}

	receipt.Activated = true
	if _, err := f.summary.Refresh(ctx); err != nil {
		f.log.Warn(ctx, "summary refresh after purchase failed", "error", err)
	}

	f.log.Info(ctx, "package activated", "package", pkg, "signature", sig)
	return receipt, nil
}

// transfer builds, signs, submits and confirms the USDC transfer to the
// treasury, creating the treasury's token account first when it does not
// exist yet.
func (f *Flow) transfer(ctx context.Context, amountUSDC float64) (string, error) {
	owner, err := f.wallet.Address()
	if err != nil {
		return "", err
	}

	fromAta, err := solana.FindAssociatedTokenAddress(owner, f.mint)
	if err != nil {
		return "", err
	}
	toAta, err := solana.FindAssociatedTokenAddress(f.treasury, f.mint)
	if err != nil {
		return "", err
	}

	var instructions []solana.Instruction
	toInfo, err := f.chain.GetAccountInfo(ctx, toAta.String())
	if err != nil {
		return "", fmt.Errorf("failed to check treasury token account: %w", err)
	}
	if toInfo == nil {
		instructions = append(instructions,
			solana.NewCreateAssociatedTokenAccountInstruction(owner, toAta, f.treasury, f.mint))
	}
	instructions = append(instructions,
		solana.NewTransferCheckedInstruction(fromAta, f.mint, toAta, owner, BaseUnits(amountUSDC), usdcDecimals))

	blockhash, err := f.chain.GetLatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get blockhash: %w", err)
	}
	blockhashKey, err := solana.ParsePublicKey(blockhash.Blockhash)
	if err != nil {
		return "", fmt.Errorf("invalid blockhash: %w", err)
	}

	msg, err := solana.NewMessage(owner, blockhashKey, instructions)
	if err != nil {
		return "", err
	}
	tx := solana.NewTransaction(msg)
	if err := f.wallet.SignTransaction(ctx, tx); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrSignatureRejected, err)
	}

	sig, err := f.chain.SendTransaction(ctx, tx.SerializeBase64())
	if err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}
	if sig == "" {
		return "", common.ErrTxSignatureMissing
	}

	if err := f.chain.WaitForConfirmation(ctx, sig); err != nil {
		return "", fmt.Errorf("transaction %s not confirmed: %w", sig, err)
	}
	return sig, nil
}
