package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// Full method names.
const (
	DockService_GetTaskbar_FullMethodName   = "/tessera.DockService/GetTaskbar"
	DockService_WatchTaskbar_FullMethodName = "/tessera.DockService/WatchTaskbar"
	DockService_Reveal_FullMethodName       = "/tessera.DockService/Reveal"
	DockService_ResolveIcon_FullMethodName  = "/tessera.DockService/ResolveIcon"
	DockService_FocusClient_FullMethodName  = "/tessera.DockService/FocusClient"
	BarService_GetMetrics_FullMethodName    = "/tessera.BarService/GetMetrics"
	DaemonService_GetStatus_FullMethodName  = "/tessera.DaemonService/GetStatus"
	DaemonService_Shutdown_FullMethodName   = "/tessera.DaemonService/Shutdown"
)

// ============================================================================
// DockService
// ============================================================================

// DockServiceClient is the client API for DockService.
type DockServiceClient interface {
	GetTaskbar(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*Taskbar, error)
	WatchTaskbar(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (DockService_WatchTaskbarClient, error)
	Reveal(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*Taskbar, error)
	ResolveIcon(ctx context.Context, in *ResolveIconRequest, opts ...grpc.CallOption) (*IconList, error)
	FocusClient(ctx context.Context, in *FocusRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type dockServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDockServiceClient creates a DockService client on cc.
func NewDockServiceClient(cc grpc.ClientConnInterface) DockServiceClient {
	return &dockServiceClient{cc}
}

func (c *dockServiceClient) GetTaskbar(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*Taskbar, error) {
	out := new(Taskbar)
	if err := c.cc.Invoke(ctx, DockService_GetTaskbar_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dockServiceClient) WatchTaskbar(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (DockService_WatchTaskbarClient, error) {
	stream, err := c.cc.NewStream(ctx, &DockService_ServiceDesc.Streams[0], DockService_WatchTaskbar_FullMethodName, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &dockServiceWatchTaskbarClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// DockService_WatchTaskbarClient receives taskbar snapshots.
type DockService_WatchTaskbarClient interface {
	Recv() (*Taskbar, error)
	grpc.ClientStream
}

type dockServiceWatchTaskbarClient struct {
	grpc.ClientStream
}

func (x *dockServiceWatchTaskbarClient) Recv() (*Taskbar, error) {
	m := new(Taskbar)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *dockServiceClient) Reveal(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*Taskbar, error) {
	out := new(Taskbar)
	if err := c.cc.Invoke(ctx, DockService_Reveal_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dockServiceClient) ResolveIcon(ctx context.Context, in *ResolveIconRequest, opts ...grpc.CallOption) (*IconList, error) {
	out := new(IconList)
	if err := c.cc.Invoke(ctx, DockService_ResolveIcon_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dockServiceClient) FocusClient(ctx context.Context, in *FocusRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DockService_FocusClient_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// DockServiceServer is the server API for DockService.
type DockServiceServer interface {
	GetTaskbar(context.Context, *emptypb.Empty) (*Taskbar, error)
	WatchTaskbar(*emptypb.Empty, DockService_WatchTaskbarServer) error
	Reveal(context.Context, *emptypb.Empty) (*Taskbar, error)
	ResolveIcon(context.Context, *ResolveIconRequest) (*IconList, error)
	FocusClient(context.Context, *FocusRequest) (*emptypb.Empty, error)
}

// UnimplementedDockServiceServer can be embedded for forward compatibility.
type UnimplementedDockServiceServer struct{}

func (UnimplementedDockServiceServer) GetTaskbar(context.Context, *emptypb.Empty) (*Taskbar, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTaskbar not implemented")
}
func (UnimplementedDockServiceServer) WatchTaskbar(*emptypb.Empty, DockService_WatchTaskbarServer) error {
	return status.Error(codes.Unimplemented, "method WatchTaskbar not implemented")
}
func (UnimplementedDockServiceServer) Reveal(context.Context, *emptypb.Empty) (*Taskbar, error) {
	return nil, status.Error(codes.Unimplemented, "method Reveal not implemented")
}
func (UnimplementedDockServiceServer) ResolveIcon(context.Context, *ResolveIconRequest) (*IconList, error) {
	return nil, status.Error(codes.Unimplemented, "method ResolveIcon not implemented")
}
func (UnimplementedDockServiceServer) FocusClient(context.Context, *FocusRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method FocusClient not implemented")
}

// RegisterDockServiceServer registers srv with s.
func RegisterDockServiceServer(s grpc.ServiceRegistrar, srv DockServiceServer) {
	s.RegisterService(&DockService_ServiceDesc, srv)
}

func _DockService_GetTaskbar_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DockServiceServer).GetTaskbar(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DockService_GetTaskbar_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DockServiceServer).GetTaskbar(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _DockService_WatchTaskbar_Handler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(DockServiceServer).WatchTaskbar(m, &dockServiceWatchTaskbarServer{stream})
}

// DockService_WatchTaskbarServer sends taskbar snapshots.
type DockService_WatchTaskbarServer interface {
	Send(*Taskbar) error
	grpc.ServerStream
}

type dockServiceWatchTaskbarServer struct {
	grpc.ServerStream
}

func (x *dockServiceWatchTaskbarServer) Send(m *Taskbar) error {
	return x.ServerStream.SendMsg(m)
}

func _DockService_Reveal_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DockServiceServer).Reveal(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DockService_Reveal_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DockServiceServer).Reveal(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _DockService_ResolveIcon_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ResolveIconRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DockServiceServer).ResolveIcon(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DockService_ResolveIcon_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DockServiceServer).ResolveIcon(ctx, req.(*ResolveIconRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DockService_FocusClient_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(FocusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DockServiceServer).FocusClient(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DockService_FocusClient_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DockServiceServer).FocusClient(ctx, req.(*FocusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// DockService_ServiceDesc is the grpc.ServiceDesc for DockService.
var DockService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "tessera.DockService",
	HandlerType: (*DockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetTaskbar", Handler: _DockService_GetTaskbar_Handler},
		{MethodName: "Reveal", Handler: _DockService_Reveal_Handler},
		{MethodName: "ResolveIcon", Handler: _DockService_ResolveIcon_Handler},
		{MethodName: "FocusClient", Handler: _DockService_FocusClient_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "WatchTaskbar", Handler: _DockService_WatchTaskbar_Handler, ServerStreams: true},
	},
	Metadata: "tessera.proto",
}

// ============================================================================
// BarService
// ============================================================================

// BarServiceClient is the client API for BarService.
type BarServiceClient interface {
	GetMetrics(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*MetricsReply, error)
}

type barServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBarServiceClient creates a BarService client on cc.
func NewBarServiceClient(cc grpc.ClientConnInterface) BarServiceClient {
	return &barServiceClient{cc}
}

func (c *barServiceClient) GetMetrics(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*MetricsReply, error) {
	out := new(MetricsReply)
	if err := c.cc.Invoke(ctx, BarService_GetMetrics_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// BarServiceServer is the server API for BarService.
type BarServiceServer interface {
	GetMetrics(context.Context, *emptypb.Empty) (*MetricsReply, error)
}

// RegisterBarServiceServer registers srv with s.
func RegisterBarServiceServer(s grpc.ServiceRegistrar, srv BarServiceServer) {
	s.RegisterService(&BarService_ServiceDesc, srv)
}

func _BarService_GetMetrics_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BarServiceServer).GetMetrics(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BarService_GetMetrics_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BarServiceServer).GetMetrics(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// BarService_ServiceDesc is the grpc.ServiceDesc for BarService.
var BarService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "tessera.BarService",
	HandlerType: (*BarServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetMetrics", Handler: _BarService_GetMetrics_Handler},
	},
	Metadata: "tessera.proto",
}

// ============================================================================
// DaemonService
// ============================================================================

// DaemonServiceClient is the client API for DaemonService.
type DaemonServiceClient interface {
	GetStatus(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*DaemonStatus, error)
	Shutdown(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type daemonServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDaemonServiceClient creates a DaemonService client on cc.
func NewDaemonServiceClient(cc grpc.ClientConnInterface) DaemonServiceClient {
	return &daemonServiceClient{cc}
}

func (c *daemonServiceClient) GetStatus(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*DaemonStatus, error) {
	out := new(DaemonStatus)
	if err := c.cc.Invoke(ctx, DaemonService_GetStatus_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *daemonServiceClient) Shutdown(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DaemonService_Shutdown_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// DaemonServiceServer is the server API for DaemonService.
type DaemonServiceServer interface {
	GetStatus(context.Context, *emptypb.Empty) (*DaemonStatus, error)
	Shutdown(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

// RegisterDaemonServiceServer registers srv with s.
func RegisterDaemonServiceServer(s grpc.ServiceRegistrar, srv DaemonServiceServer) {
	s.RegisterService(&DaemonService_ServiceDesc, srv)
}

func _DaemonService_GetStatus_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DaemonServiceServer).GetStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DaemonService_GetStatus_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DaemonServiceServer).GetStatus(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _DaemonService_Shutdown_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DaemonServiceServer).Shutdown(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DaemonService_Shutdown_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DaemonServiceServer).Shutdown(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// DaemonService_ServiceDesc is the grpc.ServiceDesc for DaemonService.
var DaemonService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "tessera.DaemonService",
	HandlerType: (*DaemonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStatus", Handler: _DaemonService_GetStatus_Handler},
		{MethodName: "Shutdown", Handler: _DaemonService_Shutdown_Handler},
	},
	Metadata: "tessera.proto",
}

// withCodec prepends the JSON codec so callers never have to pass it.
func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{CallOption()}, opts...)
}
