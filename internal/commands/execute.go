package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Toggle   func(TargetArgs) (Result, error)
	Delete   func(TargetArgs) (Result, error)
	Excuse   func(TargetArgs) (Result, error)
	Clear    func(ClearArgs) (Result, error)
	Motivate func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "toggle handler not configured"}
		}
		return handlers.Toggle(*cmd.Target)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Target)
	case TypeExcuse:
		if handlers.Excuse == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "excuse handler not configured"}
		}
		return handlers.Excuse(*cmd.Target)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "clear handler not configured"}
		}
		return handlers.Clear(*cmd.Clear)
	case TypeMotivate:
		if handlers.Motivate == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "motivate handler not configured"}
		}
		return handlers.Motivate()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
