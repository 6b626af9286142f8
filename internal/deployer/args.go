package deployer

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// coerceArgs converts loosely typed args into the Go types the ABI encoder
// expects for each constructor input.
func coerceArgs(inputs abi.Arguments, args []any) ([]any, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("constructor takes %d args, got %d", len(inputs), len(args))
	}

	out := make([]any, len(args))
	for i, input := range inputs {
		v, err := coerce(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("arg %d (%s %s): %w", i, input.Type.String(), input.Name, err)
		}
		out[i] = v
	}
	return out, nil
}

func coerce(t abi.Type, value any) (any, error) {
	switch t.T {
	case abi.StringTy:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("unsupported string type %T", value)
		}
		return s, nil
	case abi.AddressTy:
		return asAddress(value)
	case abi.BoolTy:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("unsupported bool type %T", value)
		}
		return b, nil
	case abi.UintTy, abi.IntTy:
		n, err := asBigInt(value)
		if err != nil {
			return nil, err
		}
		return fitInteger(t, n)
	default:
		return value, nil
	}
}

// fitInteger returns n as the exact Go kind the encoder wants for t.
func fitInteger(t abi.Type, n *big.Int) (any, error) {
	if t.T == abi.UintTy && n.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s for %s", n, t.String())
	}
	if n.BitLen() > t.Size {
		return nil, fmt.Errorf("value %s overflows %s", n, t.String())
	}

	goType := t.GetType()
	if goType == reflect.TypeOf(&big.Int{}) {
		return n, nil
	}

	v := reflect.New(goType).Elem()
	switch goType.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !n.IsUint64() || v.OverflowUint(n.Uint64()) {
			return nil, fmt.Errorf("value %s overflows %s", n, t.String())
		}
		v.SetUint(n.Uint64())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !n.IsInt64() || v.OverflowInt(n.Int64()) {
			return nil, fmt.Errorf("value %s overflows %s", n, t.String())
		}
		v.SetInt(n.Int64())
	default:
		return nil, fmt.Errorf("unsupported integer kind %s", goType.Kind())
	}
	return v.Interface(), nil
}

func asAddress(value any) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, fmt.Errorf("invalid address: %s", v)
		}
		return common.HexToAddress(v), nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil integer")
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}
