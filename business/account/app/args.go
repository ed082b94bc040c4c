package app

import (
	"github.com/stellar/go/xdr"

	"github.com/stablearb/arbgate/business/account/domain"
	"github.com/stablearb/arbgate/internal/apperror"
	"github.com/stablearb/arbgate/internal/soroban"
)

func addressArg(addr string) (xdr.ScVal, error) {
	v, err := soroban.AddressArg(addr)
	if err != nil {
		return xdr.ScVal{}, apperror.New(apperror.CodeInvalidAddress,
			apperror.WithContext(addr), apperror.WithCause(err))
	}
	return v, nil
}

func u32Arg(n uint32) xdr.ScVal {
	return soroban.U32Arg(n)
}

func i128FromString(s string) (xdr.ScVal, error) {
	return soroban.I128FromString(s)
}

func userConfigArg(cfg domain.UserConfig) (xdr.ScVal, error) {
	maxGas, err := soroban.I128FromString(cfg.MaxGasPrice)
	if err != nil {
		return xdr.ScVal{}, err
	}
	maxTrade, err := soroban.I128FromString(cfg.MaxTradeSize)
	if err != nil {
		return xdr.ScVal{}, err
	}
	minLiquidity, err := soroban.I128FromString(cfg.MinLiquidity)
	if err != nil {
		return xdr.ScVal{}, err
	}

	return soroban.StructArg(
		soroban.Field{Name: "enabled", Val: soroban.BoolArg(cfg.Enabled)},
		soroban.Field{Name: "max_gas_price", Val: maxGas},
		soroban.Field{Name: "max_trade_size", Val: maxTrade},
		soroban.Field{Name: "min_liquidity", Val: minLiquidity},
		soroban.Field{Name: "min_profit_bps", Val: soroban.U32Arg(uint32(cfg.MinProfitBps))},
		soroban.Field{Name: "slippage_tolerance_bps", Val: soroban.U32Arg(uint32(cfg.SlippageToleranceBps))},
	), nil
}

func riskLimitsArg(limits domain.RiskLimits) (xdr.ScVal, error) {
	maxVolume, err := soroban.I128FromString(limits.MaxDailyVolume)
	if err != nil {
		return xdr.ScVal{}, err
	}
	maxPosition, err := soroban.I128FromString(limits.MaxPositionSize)
	if err != nil {
		return xdr.ScVal{}, err
	}
	varLimit, err := soroban.I128FromString(limits.VarLimit)
	if err != nil {
		return xdr.ScVal{}, err
	}

	return soroban.StructArg(
		soroban.Field{Name: "max_daily_volume", Val: maxVolume},
		soroban.Field{Name: "max_position_size", Val: maxPosition},
		soroban.Field{Name: "max_drawdown_bps", Val: soroban.U32Arg(uint32(limits.MaxDrawdownBps))},
		soroban.Field{Name: "var_limit", Val: varLimit},
	), nil
}
