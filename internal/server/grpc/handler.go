package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/common"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) RegisterUser(ctx context.Context, req *pb.RegisterUserRequest) (*pb.RegisterUserResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.GetUsername())

	user, err := s.users.Register(ctx, req.GetUsername(), req.GetPassword())
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.RegisterUserResponse{
		UserId:   user.ID,
		Username: user.UserName,
		Message:  "User registered successfully",
	}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	s.logger.Info(ctx, "Login request", "username", req.GetUsername())

	res, err := s.users.Login(ctx, req.GetUsername(), req.GetPassword())
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.LoginResponse{
		AccessToken: res.Token,
		ExpiresAt:   res.Claims.ExpiresAt.Unix(),
		Message:     "Login successful",
	}, nil
}

// WhoAmI relies on accessTokenInterceptor having validated the token.
func (s *GRPCServer) WhoAmI(ctx context.Context, _ *pb.WhoAmIRequest) (*pb.WhoAmIResponse, error) {

	token, _ := ctx.Value(accessTokenKey).(string)

	user, err := s.users.WhoAmI(ctx, token)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.WhoAmIResponse{
		UserId:    user.ID,
		Username:  user.UserName,
		CreatedAt: user.CreatedAt.Unix(),
	}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

// toStatus maps a flow error onto a gRPC status. Internal failures carry
// no detail.
func toStatus(err error) error {
	var code codes.Code

	switch common.KindOf(err) {
	case common.KindInvalidInput:
		code = codes.InvalidArgument
	case common.KindUsernameTaken:
		code = codes.AlreadyExists
	case common.KindInvalidCredentials, common.KindInvalidToken, common.KindTokenExpired, common.KindUnauthorized:
		code = codes.Unauthenticated
	default:
		code = codes.Internal
	}

	return status.Error(code, common.PublicMessage(err))
}
