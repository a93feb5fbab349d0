package permtree

import (
	gocontext "context"
	"strconv"
)

// dispatchGate routes a reserved gate keyword to its routine.
// upper is the already-canonicalized (upper-case) gate name.
func (ev *Evaluator) dispatchGate(ctx gocontext.Context, upper string, value Node, activeType string, permCtx Context, p path) (bool, error) {
	switch upper {
	case KeyAnd:
		return ev.gateAnd(ctx, value, activeType, permCtx, p)
	case KeyNand:
		res, err := ev.gateAnd(ctx, value, activeType, permCtx, p)
		if err != nil {
			return false, err
		}
		return !res, nil
	case KeyOr:
		return ev.gateOr(ctx, value, activeType, permCtx, p)
	case KeyNor:
		res, err := ev.gateOr(ctx, value, activeType, permCtx, p)
		if err != nil {
			return false, err
		}
		return !res, nil
	case KeyXor:
		return ev.gateXor(ctx, value, activeType, permCtx, p)
	case KeyNot:
		return ev.gateNot(ctx, value, activeType, permCtx, p)
	default:
		return false, newError(InvalidArgumentValue, p, upper, "unrecognized gate %q", upper)
	}
}

// gateElements validates a gate's value shape and arity, then extracts its
// ordered sub-nodes via subNodes. minArgs is the gate's minimum arity (1
// for AND/NAND/OR/NOR, 2 for XOR).
func gateElements(value Node, activeType string, minArgs int, gateName string, p path) ([]Node, error) {
	var count int
	switch value.Kind {
	case KindList:
		count = len(value.List)
	case KindMap:
		count = value.Map.Len()
	default:
		return nil, newError(InvalidValueForLogicGate, p, value.Kind, "%s requires a list or map value", gateName)
	}
	if count < minArgs {
		return nil, newError(InvalidValueForLogicGate, p, count, "%s requires at least %d element(s), got %d", gateName, minArgs, count)
	}
	return subNodes(value, activeType)
}

// gateAnd is true iff every sub-node evaluates to true, short-circuiting
// on the first false.
func (ev *Evaluator) gateAnd(ctx gocontext.Context, value Node, activeType string, permCtx Context, p path) (bool, error) {
	subs, err := gateElements(value, activeType, 1, KeyAnd, p)
	if err != nil {
		return false, err
	}
	for i, sub := range subs {
		res, err := ev.dispatch(ctx, sub, activeType, permCtx, p.push(strconv.Itoa(i)))
		if err != nil {
			return false, err
		}
		if !res {
			return false, nil
		}
	}
	return true, nil
}

// gateOr is true iff any sub-node evaluates to true, short-circuiting on
// the first true.
func (ev *Evaluator) gateOr(ctx gocontext.Context, value Node, activeType string, permCtx Context, p path) (bool, error) {
	subs, err := gateElements(value, activeType, 1, KeyOr, p)
	if err != nil {
		return false, err
	}
	for i, sub := range subs {
		res, err := ev.dispatch(ctx, sub, activeType, permCtx, p.push(strconv.Itoa(i)))
		if err != nil {
			return false, err
		}
		if res {
			return true, nil
		}
	}
	return false, nil
}

// gateXor is true iff at least one sub-node is true and at least one is
// false, short-circuiting as soon as both have been observed. A single
// element is malformed (strict minimum arity of 2) even though its result
// would be deterministic.
func (ev *Evaluator) gateXor(ctx gocontext.Context, value Node, activeType string, permCtx Context, p path) (bool, error) {
	subs, err := gateElements(value, activeType, 2, KeyXor, p)
	if err != nil {
		return false, err
	}
	sawTrue, sawFalse := false, false
	for i, sub := range subs {
		res, err := ev.dispatch(ctx, sub, activeType, permCtx, p.push(strconv.Itoa(i)))
		if err != nil {
			return false, err
		}
		if res {
			sawTrue = true
		} else {
			sawFalse = true
		}
		if sawTrue && sawFalse {
			return true, nil
		}
	}
	return false, nil
}

// gateNot negates dispatch(value, ...). Its value must be a single-key map
// or a non-empty string; any other shape is malformed.
func (ev *Evaluator) gateNot(ctx gocontext.Context, value Node, activeType string, permCtx Context, p path) (bool, error) {
	switch value.Kind {
	case KindMap:
		if value.Map.Len() != 1 {
			return false, newError(InvalidValueForLogicGate, p, value.Map.Len(), "NOT requires a single-key map or a non-empty string")
		}
	case KindStr:
		if value.Str == "" {
			return false, newError(InvalidValueForLogicGate, p, value.Str, "NOT requires a single-key map or a non-empty string")
		}
	default:
		return false, newError(InvalidValueForLogicGate, p, value.Kind, "NOT requires a single-key map or a non-empty string")
	}

	res, err := ev.dispatch(ctx, value, activeType, permCtx, p)
	if err != nil {
		return false, err
	}
	return !res, nil
}

