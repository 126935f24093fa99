package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "diceroller.api.v1alpha1.DiceService"

// Method names served by DiceService
const (
	MethodListDice           = "ListDice"
	MethodSelectDie          = "SelectDie"
	MethodAddCustomDie       = "AddCustomDie"
	MethodRemoveDie          = "RemoveDie"
	MethodRollSelected       = "RollSelected"
	MethodRollMany           = "RollMany"
	MethodListHistory        = "ListHistory"
	MethodDeleteHistoryEntry = "DeleteHistoryEntry"
	MethodClearHistory       = "ClearHistory"
)

// DiceServiceServer is the server API for DiceService. Every message is a
// google.protobuf.Struct holding the JSON form of the matching wire type.
type DiceServiceServer interface {
	ListDice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectDie(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddCustomDie(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveDie(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollSelected(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollMany(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteHistoryEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(DiceServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// DiceServiceDesc describes DiceService for grpc.Server registration
var DiceServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodListDice, DiceServiceServer.ListDice),
		unary(MethodSelectDie, DiceServiceServer.SelectDie),
		unary(MethodAddCustomDie, DiceServiceServer.AddCustomDie),
		unary(MethodRemoveDie, DiceServiceServer.RemoveDie),
		unary(MethodRollSelected, DiceServiceServer.RollSelected),
		unary(MethodRollMany, DiceServiceServer.RollMany),
		unary(MethodListHistory, DiceServiceServer.ListHistory),
		unary(MethodDeleteHistoryEntry, DiceServiceServer.DeleteHistoryEntry),
		unary(MethodClearHistory, DiceServiceServer.ClearHistory),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterDiceServiceServer registers srv on s
func RegisterDiceServiceServer(s grpc.ServiceRegistrar, srv DiceServiceServer) {
	s.RegisterService(&DiceServiceDesc, srv)
}

// FullMethod returns the /service/method path for a method name
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unary(name string, call unaryMethod) grpc.MethodDesc {
	fullMethod := FullMethod(name)

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := &structpb.Struct{}
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DiceServiceServer), ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DiceServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
