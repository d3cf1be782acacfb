// Package client содержит gRPC-клиент авторизационного сервиса,
// используемый HTTP API для регистрации, входа и валидации токенов.
package client

import (
	"context"
	"time"

	"google.golang.org/grpc"

	authpb "github.com/courseforge/course-platform/internal/grpc/gen"
)

// AuthClient оборачивает gRPC-соединение с авторизационным сервисом.
type AuthClient struct {
	conn   *grpc.ClientConn
	client authpb.AuthServiceClient
}

// NewAuthClient устанавливает соединение с авторизационным сервисом по указанному адресу.
func NewAuthClient(addr string) (*AuthClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(ctx, addr, grpc.WithInsecure(), grpc.WithBlock())
	if err != nil {
		return nil, err
	}

	c := authpb.NewAuthServiceClient(conn)
	return &AuthClient{conn: conn, client: c}, nil
}

// Close закрывает соединение с сервисом.
func (a *AuthClient) Close() error {
	return a.conn.Close()
}

// Login выполняет вход пользователя и возвращает токены.
func (a *AuthClient) Login(ctx context.Context, username, password string) (*authpb.LoginResponse, error) {
	return a.client.Login(ctx, &authpb.LoginRequest{
		Username: username,
		Password: password,
	})
}

// Register создает нового пользователя.
func (a *AuthClient) Register(ctx context.Context, email, username, password string) error {
	_, err := a.client.Register(ctx, &authpb.RegisterRequest{
		Email:    email,
		Username: username,
		Password: password,
	})
	return err
}

// ValidateToken проверяет JWT и возвращает данные пользователя.
func (a *AuthClient) ValidateToken(ctx context.Context, token string) (*authpb.ValidateTokenResponse, error) {
	return a.client.ValidateToken(ctx, &authpb.ValidateTokenRequest{
		Token: token,
	})
}
