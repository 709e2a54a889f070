// Package grpc provides a gRPC server for the product service.
//
// The service is described by hand and exchanges protobuf well-known types, so no
// generated code is needed:
//
//	service ProductService {
//	  rpc GetProduct(google.protobuf.Int64Value) returns (google.protobuf.Struct);
//	  rpc ListProducts(google.protobuf.Empty) returns (google.protobuf.ListValue);
//	}
package grpc

import (
	"context"
	"errors"
	"log/slog"

	perrors "github.com/abgdnv/productmanager/internal/product/errors"
	"github.com/abgdnv/productmanager/internal/product/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName        = "product.v1.ProductService"
	GetProductMethod   = "/" + ServiceName + "/GetProduct"
	ListProductsMethod = "/" + ServiceName + "/ListProducts"
)

// ProductService defines the subset of the product service exposed over gRPC.
type ProductService interface {
	FindByID(ctx context.Context, id int64) (*service.ProductDto, error)
	FindAll(ctx context.Context) ([]service.ProductDto, error)
}

// ProductServiceServer is the server API for the product gRPC service.
type ProductServiceServer interface {
	GetProduct(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error)
	ListProducts(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
}

// ServiceDesc is the grpc.ServiceDesc for ProductService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProduct", Handler: getProductHandler},
		{MethodName: "ListProducts", Handler: listProductsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "product/v1/product.proto",
}

// Register registers the product service implementation with a gRPC server.
func Register(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type Server struct {
	service ProductService
}

var _ ProductServiceServer = (*Server)(nil)

func NewServer(service ProductService) *Server {
	return &Server{service: service}
}

func (s *Server) GetProduct(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	id := req.GetValue()
	if id <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "invalid product ID: %d", id)
	}
	logger := slog.With(slog.Int64("product_id", id))
	product, err := s.service.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, perrors.ErrProductNotFound):
			return nil, status.Errorf(codes.NotFound, "product with id %d not found", id)
		case errors.Is(err, perrors.ErrNotInitialized):
			return nil, status.Error(codes.FailedPrecondition, "product store is not initialized")
		}
		logger.Error("service.FindByID failed", slog.Any("error", err))
		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	res, err := structpb.NewStruct(toMap(product))
	if err != nil {
		logger.Error("failed to encode product", slog.Any("error", err))
		return nil, status.Errorf(codes.Internal, "internal server error")
	}
	return res, nil
}

func (s *Server) ListProducts(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	products, err := s.service.FindAll(ctx)
	if err != nil {
		if errors.Is(err, perrors.ErrNotInitialized) {
			return nil, status.Error(codes.FailedPrecondition, "product store is not initialized")
		}
		slog.Error("service.FindAll failed", slog.Any("error", err))
		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	items := make([]any, 0, len(products))
	for i := range products {
		items = append(items, toMap(&products[i]))
	}
	res, err := structpb.NewList(items)
	if err != nil {
		slog.Error("failed to encode product list", slog.Any("error", err))
		return nil, status.Errorf(codes.Internal, "internal server error")
	}
	return res, nil
}

func toMap(p *service.ProductDto) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"thumbnail":   p.Thumbnail,
		"code":        p.Code,
		"stock":       p.Stock,
	}
}

func getProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductServiceServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetProductMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductServiceServer).GetProduct(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func listProductsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductServiceServer).ListProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListProductsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductServiceServer).ListProducts(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
