package brokertest

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kuksa-sdk/kuksa-go/pkg/convert"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
)

type sdvBroker struct {
	sdvv1.UnimplementedBrokerServer
	b *Broker
}

func (s *sdvBroker) GetDatapoints(_ context.Context, req *sdvv1.GetDatapointsRequest) (*sdvv1.GetDatapointsResponse, error) {
	resp := &sdvv1.GetDatapointsResponse{Datapoints: make(map[string]*sdvv1.Datapoint, len(req.Datapoints))}
	for _, name := range req.Datapoints {
		got, ok := s.b.Signal(name)
		if !ok {
			resp.Datapoints[name] = sdvv1.NewFailure(sdvv1.FailureUnknownDatapoint)
			continue
		}
		resp.Datapoints[name] = convert.ToSDVDatapoint(got.Current)
	}
	return resp, nil
}

func (s *sdvBroker) SetDatapoints(_ context.Context, req *sdvv1.SetDatapointsRequest) (*sdvv1.SetDatapointsResponse, error) {
	resp := &sdvv1.SetDatapointsResponse{Errors: make(map[string]sdvv1.DatapointError)}
	for name, dp := range req.Datapoints {
		sig, ok := s.b.lookup(name)
		if !ok {
			resp.Errors[name] = sdvv1.DatapointErrorUnknownDatapoint
			continue
		}
		if _, failed := s.b.failure(name); failed {
			resp.Errors[name] = sdvv1.DatapointErrorAccessDenied
			continue
		}
		if sig.Metadata.EntryType != value.EntryTypeActuator {
			resp.Errors[name] = sdvv1.DatapointErrorAccessDenied
			continue
		}
		v, err := convert.FromSDVDatapoint(dp, sig.Metadata.DataType)
		if err != nil || !v.HasValue() {
			resp.Errors[name] = sdvv1.DatapointErrorInvalidType
			continue
		}
		s.b.write(sdvv1.Broker_SetDatapoints_FullMethodName, sig, true, v)
	}
	return resp, nil
}

func (s *sdvBroker) Subscribe(req *sdvv1.SubscribeRequest, stream grpc.ServerStreamingServer[sdvv1.SubscribeReply]) error {
	paths, err := convert.PathsFromQuery(req.Query)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	for _, p := range paths {
		if _, ok := s.b.lookup(p); !ok {
			return status.Errorf(codes.InvalidArgument, "unknown field %q", p)
		}
	}
	return s.b.serve(stream.Context(), paths, false, func(cs []change) error {
		reply := &sdvv1.SubscribeReply{Fields: make(map[string]*sdvv1.Datapoint, len(cs))}
		for _, c := range cs {
			reply.Fields[c.path] = convert.ToSDVDatapoint(c.dp)
		}
		return stream.Send(reply)
	})
}

// GetMetadata leaves unknown names out of the list. No names lists every
// signal.
func (s *sdvBroker) GetMetadata(_ context.Context, req *sdvv1.GetMetadataRequest) (*sdvv1.GetMetadataReply, error) {
	var sigs []*Signal
	if len(req.Names) == 0 {
		sigs = s.b.sorted()
	}
	for _, name := range req.Names {
		if sig, ok := s.b.lookup(name); ok {
			sigs = append(sigs, sig)
		}
	}
	reply := &sdvv1.GetMetadataReply{}
	for _, sig := range sigs {
		md, err := convert.MetadataToSDV(sig.Metadata)
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		reply.List = append(reply.List, md)
	}
	return reply, nil
}

type sdvCollector struct {
	sdvv1.UnimplementedCollectorServer
	b *Broker
}

func (s *sdvCollector) RegisterDatapoints(_ context.Context, req *sdvv1.RegisterDatapointsRequest) (*sdvv1.RegisterDatapointsReply, error) {
	reply := &sdvv1.RegisterDatapointsReply{Results: make(map[string]int32, len(req.List))}
	for _, r := range req.List {
		dt, err := convert.FromSDVDataType(r.DataType)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		et := value.EntryTypeSensor
		if r.ChangeType == sdvv1.ChangeTypeStatic {
			et = value.EntryTypeAttribute
		}
		reply.Results[r.Name] = s.b.Add(value.Metadata{
			Path:        r.Name,
			DataType:    dt,
			EntryType:   et,
			Description: r.Description,
		})
	}
	return reply, nil
}

func (s *sdvCollector) UpdateDatapoints(_ context.Context, req *sdvv1.UpdateDatapointsRequest) (*sdvv1.UpdateDatapointsReply, error) {
	reply := &sdvv1.UpdateDatapointsReply{Errors: make(map[int32]sdvv1.DatapointError)}
	for id, dp := range req.Datapoints {
		sig, ok := s.b.lookupID(id)
		if !ok {
			reply.Errors[id] = sdvv1.DatapointErrorUnknownDatapoint
			continue
		}
		if _, failed := s.b.failure(sig.Metadata.Path); failed {
			reply.Errors[id] = sdvv1.DatapointErrorAccessDenied
			continue
		}
		v, err := convert.FromSDVDatapoint(dp, sig.Metadata.DataType)
		if err != nil {
			reply.Errors[id] = sdvv1.DatapointErrorInvalidType
			continue
		}
		s.b.write(sdvv1.Collector_UpdateDatapoints_FullMethodName, sig, false, v)
	}
	return reply, nil
}
