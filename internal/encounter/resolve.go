package encounter

import (
	"math"

	"github.com/candlefield/trading-game/internal/ledger"
	"github.com/candlefield/trading-game/internal/rng"
)

func offerHeadline(t Type) string {
	switch t {
	case TypeSEC:
		return "SEC investigators arrive with a subpoena for your trading records"
	case TypeDivorce:
		return "You've been served: your spouse has filed for divorce"
	case TypeShitcoin:
		return "An old friend offers you pre-sale access to GigaChadCoin"
	case TypeKidney:
		return "A discreet clinic will pay handsomely for a spare kidney"
	case TypeRoulette:
		return "A whale invites you to the high-roller roulette table"
	case TypeTax:
		return "The tax authority has opened a full audit of your returns"
	}
	return ""
}

func choicesFor(t Type) []string {
	switch t {
	case TypeSEC:
		return []string{"pay", "fight"}
	case TypeDivorce:
		return []string{"settle", "contest"}
	case TypeShitcoin:
		return []string{"invest", "pass"}
	case TypeKidney:
		return []string{"sell", "refuse"}
	case TypeRoulette:
		return []string{"red", "black"}
	case TypeTax:
		return []string{"pay", "offshore"}
	}
	return nil
}

// pctOfExposed floors the computed amount to whole units, per the numeric
// policy: 20% of a 100,000 exposed net worth is exactly 20,000.
func pctOfExposed(ctx Context, pct float64) float64 {
	return math.Floor(ctx.exposed() * pct)
}

// withLiquidation marks the shortfall when cash cannot cover a deduction.
func withLiquidation(res Result, ctx Context, amount float64) Result {
	if amount > ctx.Cash {
		res.LiquidationRequired = amount
	}
	return res
}

func resolve(t Type, ctx Context, r rng.RNG) (Result, error) {
	switch t {
	case TypeSEC:
		return resolveSEC(ctx, r)
	case TypeDivorce:
		return resolveDivorce(ctx, r)
	case TypeShitcoin:
		return resolveShitcoin(ctx, r)
	case TypeKidney:
		return resolveKidney(ctx, r)
	case TypeRoulette:
		return resolveRoulette(ctx, r)
	case TypeTax:
		return resolveTax(ctx, r)
	}
	return Result{}, ErrUnknownChoice
}

func resolveSEC(ctx Context, r rng.RNG) (Result, error) {
	switch ctx.Choice {
	case "pay":
		fine := pctOfExposed(ctx, 0.20)
		res := Result{
			Headline:   "You settle with the SEC and pay the fine without admitting wrongdoing",
			CashChange: -fine,
		}
		return withLiquidation(res, ctx, fine), nil
	case "fight":
		if r.Float64() < 0.5 {
			return Result{Headline: "The jury finds for you; cable news calls it total vindication"}, nil
		}
		return Result{
			Headline: "The jury deliberates for forty minutes. Guilty on all counts",
			GameOver: true,
			Reason:   ledger.ReasonImprisoned,
		}, nil
	}
	return Result{}, ErrUnknownChoice
}

func resolveDivorce(ctx Context, r rng.RNG) (Result, error) {
	switch ctx.Choice {
	case "settle":
		cut := pctOfExposed(ctx, 0.50)
		res := Result{
			Headline:   "The settlement is signed; half of everything changes hands",
			CashChange: -cut,
		}
		return withLiquidation(res, ctx, cut), nil
	case "contest":
		if r.Float64() < 0.30 {
			return Result{Headline: "The judge dismisses the petition on a technicality"}, nil
		}
		cut := pctOfExposed(ctx, 0.60)
		res := Result{
			Headline:   "The court awards your spouse sixty percent, plus legal fees",
			CashChange: -cut,
		}
		return withLiquidation(res, ctx, cut), nil
	}
	return Result{}, ErrUnknownChoice
}

func resolveShitcoin(ctx Context, r rng.RNG) (Result, error) {
	switch ctx.Choice {
	case "invest":
		stake := pctOfExposed(ctx, 0.10)
		if r.Float64() < 0.30 {
			return Result{
				Headline:   "GigaChadCoin does a 10x before you finish your coffee",
				CashChange: stake * 9,
			}, nil
		}
		res := Result{
			Headline:   "The GigaChadCoin site now redirects to a shrug emoji",
			CashChange: -stake,
		}
		return withLiquidation(res, ctx, stake), nil
	case "pass":
		return Result{Headline: "You pass. Your friend stops returning your calls"}, nil
	}
	return Result{}, ErrUnknownChoice
}

func resolveKidney(ctx Context, r rng.RNG) (Result, error) {
	switch ctx.Choice {
	case "sell":
		if r.Float64() < 0.05 {
			return Result{
				Headline: "Complications on the table. The clinic's lawyers send flowers",
				GameOver: true,
				Reason:   ledger.ReasonDeceased,
			}, nil
		}
		return Result{
			Headline:   "Recovery is rough but the wire transfer clears",
			CashChange: 50_000,
		}, nil
	case "refuse":
		return Result{Headline: "You keep both kidneys and your dignity, barely"}, nil
	}
	return Result{}, ErrUnknownChoice
}

func resolveRoulette(ctx Context, r rng.RNG) (Result, error) {
	if ctx.Choice != "red" && ctx.Choice != "black" {
		return Result{}, ErrUnknownChoice
	}
	bet := ctx.BetAmount
	if bet <= 0 {
		bet = 1000
	}

	// European wheel: one zero, then an even red/black split.
	spin := r.Float64()
	var landed string
	switch {
	case spin < 1.0/37.0:
		landed = "zero"
	case spin < 1.0/37.0+18.0/37.0:
		landed = "red"
	default:
		landed = "black"
	}

	if landed == ctx.Choice {
		return Result{
			Headline:   "The ball drops on " + landed + ". The table applauds",
			CashChange: bet,
		}, nil
	}
	res := Result{
		Headline:   "The ball drops on " + landed + ". The croupier sweeps your chips",
		CashChange: -bet,
	}
	return withLiquidation(res, ctx, bet), nil
}

func resolveTax(ctx Context, r rng.RNG) (Result, error) {
	switch ctx.Choice {
	case "pay":
		bill := pctOfExposed(ctx, 0.30)
		res := Result{
			Headline:   "You pay the back taxes, penalties, and interest in full",
			CashChange: -bill,
		}
		return withLiquidation(res, ctx, bill), nil
	case "offshore":
		if r.Float64() < 0.40 {
			return Result{Headline: "The paper trail dead-ends in three jurisdictions. Case closed"}, nil
		}
		penalty := pctOfExposed(ctx, 0.50)
		if r.Float64() < 0.50 {
			return Result{
				Headline: "The shell companies unravel on live TV. Wire fraud charges follow",
				GameOver: true,
				Reason:   ledger.ReasonImprisoned,
			}, nil
		}
		res := Result{
			Headline:   "The scheme collapses; you pay half of everything to stay free",
			CashChange: -penalty,
		}
		return withLiquidation(res, ctx, penalty), nil
	}
	return Result{}, ErrUnknownChoice
}
