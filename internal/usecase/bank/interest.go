package bank

import (
	"math/big"

	bankDomain "custodian-bank/internal/domain/bank"
)

var (
	hundred  = big.NewInt(100)
	maxInt64 = big.NewInt(1<<63 - 1)
)

// toInt64 collapses a big.Int chain back to int64 and fails closed on
// overflow instead of silently wrapping.
func toInt64(v *big.Int) (int64, error) {
	if v.Sign() < 0 || v.Cmp(maxInt64) > 0 {
		return 0, bankDomain.ErrAmountOverflow
	}
	return v.Int64(), nil
}

// DeriveInterestPerSec computes the interest accrued per second by exactly
// one minimum-deposit unit of principal at the given yearly rate. Floor
// division at each step.
func DeriveInterestPerSec(minDeposit, yearlyRatePct, secondsPerYear int64) int64 {
	yearly := new(big.Int).Mul(big.NewInt(minDeposit), big.NewInt(yearlyRatePct))
	yearly.Quo(yearly, hundred)
	yearly.Quo(yearly, big.NewInt(secondsPerYear))
	// derivation never exceeds minDeposit, so the int64 round trip is safe
	return yearly.Int64()
}

// InterestEarned computes the credits minted when a deposit closes:
//
//	perSec   = interestPerSecMinDeposit × ⌊principal / minDeposit⌋
//	interest = perSec × blocks × blockSeconds
//
// The ⌊principal/minDeposit⌋ term truncates: principal strictly between
// multiples of the minimum deposit earns at the lower multiple.
func InterestEarned(interestPerSecMinDeposit, principal, minDeposit int64, blocks uint64, blockSeconds int64) (int64, error) {
	if minDeposit <= 0 || principal < 0 || interestPerSecMinDeposit < 0 || blockSeconds <= 0 {
		return 0, bankDomain.ErrInvalidAmount
	}
	units := principal / minDeposit
	perSec := new(big.Int).Mul(big.NewInt(interestPerSecMinDeposit), big.NewInt(units))
	interest := new(big.Int).Mul(perSec, new(big.Int).SetUint64(blocks))
	interest.Mul(interest, big.NewInt(blockSeconds))
	return toInt64(interest)
}

// CollateralRequired sizes the reward-credit collateral for a loan:
// amount × ratioPct × rate / 100, floor.
func CollateralRequired(amount, ratioPct, rate int64) (int64, error) {
	if amount <= 0 || ratioPct <= 0 || rate <= 0 {
		return 0, bankDomain.ErrInvalidAmount
	}
	c := new(big.Int).Mul(big.NewInt(amount), big.NewInt(ratioPct))
	c.Mul(c, big.NewInt(rate))
	c.Quo(c, hundred)
	return toInt64(c)
}

// LoanFee is the portion of collateral the bank keeps on repayment:
// collateral × feePct / 100, floor.
func LoanFee(collateral, feePct int64) int64 {
	f := new(big.Int).Mul(big.NewInt(collateral), big.NewInt(feePct))
	f.Quo(f, hundred)
	// fee ≤ collateral whenever feePct ≤ 100, so no overflow check needed
	return f.Int64()
}
