// Package ens resolves Ethereum Name Service names to addresses and back.
package ens

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	pcommon "github.com/tranvictor/payroll/common"
	"github.com/tranvictor/payroll/metrics"
	"github.com/tranvictor/payroll/util/cache"
)

const AvatarKey = "avatar"

// Caller performs read only contract calls. reader.EthReader implements it.
type Caller interface {
	ReadContractToBytes(
		atBlock int64,
		from string,
		caddr string,
		abi *abi.ABI,
		method string,
		args ...interface{},
	) ([]byte, error)
}

type Options struct {
	// Registry is the ENS registry address, MainnetRegistry when empty.
	Registry  string
	CacheSize int
	CacheTTL  time.Duration
	Logger    logr.Logger
}

// Service looks names up through the ENS registry. Every method returns an
// empty string and a nil error when there is no record. Found values and
// missing records are cached, errors are not.
type Service struct {
	caller   Caller
	registry string
	cache    *cache.Cache[string]
	log      logr.Logger
}

func NewService(caller Caller, opts Options) *Service {
	registry := opts.Registry
	if registry == "" {
		registry = MainnetRegistry
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Service{
		caller:   caller,
		registry: registry,
		cache:    cache.New[string](opts.CacheSize, opts.CacheTTL),
		log:      log.WithName("ens"),
	}
}

func (s *Service) cached(method, key string, lookup func() (string, error)) (string, error) {
	cacheKey := method + ":" + key
	if v, found := s.cache.Get(cacheKey); found {
		metrics.CacheRequestsTotal.WithLabelValues(method, "hit").Inc()
		return v, nil
	}
	metrics.CacheRequestsTotal.WithLabelValues(method, "miss").Inc()
	v, err := lookup()
	if err != nil {
		return "", err
	}
	s.cache.Set(cacheKey, v)
	return v, nil
}

func (s *Service) call(ctx context.Context, contract string, a *abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.caller.ReadContractToBytes(-1, pcommon.ZeroAddress, contract, a, method, args...)
	if err != nil {
		return nil, fmt.Errorf("calling %s on %s: %w", method, contract, err)
	}
	// no code at the address
	if len(data) == 0 {
		return nil, nil
	}
	out, err := a.Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", method, err)
	}
	return out, nil
}

// resolverOf returns the resolver contract of node, the zero address when
// the name has none.
func (s *Service) resolverOf(ctx context.Context, node common.Hash) (common.Address, error) {
	out, err := s.call(ctx, s.registry, RegistryABI, "resolver", node)
	if err != nil || len(out) == 0 {
		return common.Address{}, err
	}
	addr, _ := out[0].(common.Address)
	return addr, nil
}

func (s *Service) resolveAddress(ctx context.Context, name string) (string, error) {
	node, err := NameHash(name)
	if err != nil {
		return "", err
	}
	res, err := s.resolverOf(ctx, node)
	if err != nil || res == (common.Address{}) {
		return "", err
	}
	out, err := s.call(ctx, res.Hex(), ResolverABI, "addr", node)
	if err != nil || len(out) == 0 {
		return "", err
	}
	addr, _ := out[0].(common.Address)
	if addr == (common.Address{}) {
		return "", nil
	}
	return addr.Hex(), nil
}

// ResolveAddress returns the checksummed address name points to.
func (s *Service) ResolveAddress(ctx context.Context, name string) (string, error) {
	name = Normalize(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	addr, err := s.cached("addr", name, func() (string, error) {
		return s.resolveAddress(ctx, name)
	})
	if err != nil {
		return "", err
	}
	s.log.V(1).Info("resolved name", "name", name, "address", addr)
	return addr, nil
}

func (s *Service) text(ctx context.Context, name, key string) (string, error) {
	node, err := NameHash(name)
	if err != nil {
		return "", err
	}
	res, err := s.resolverOf(ctx, node)
	if err != nil || res == (common.Address{}) {
		return "", err
	}
	out, err := s.call(ctx, res.Hex(), ResolverABI, "text", node, key)
	if err != nil || len(out) == 0 {
		return "", err
	}
	value, _ := out[0].(string)
	return value, nil
}

func (s *Service) resolveName(ctx context.Context, address common.Address) (string, error) {
	node, err := NameHash(ReverseName(address))
	if err != nil {
		return "", err
	}
	res, err := s.resolverOf(ctx, node)
	if err != nil || res == (common.Address{}) {
		return "", err
	}
	out, err := s.call(ctx, res.Hex(), ResolverABI, "name", node)
	if err != nil || len(out) == 0 {
		return "", err
	}
	name, _ := out[0].(string)
	if name == "" {
		return "", nil
	}
	// anyone can claim any name in their reverse record, only trust it when
	// the name points back at the address
	forward, err := s.ResolveAddress(ctx, name)
	if err != nil {
		return "", err
	}
	if !pcommon.SameAddress(forward, address.Hex()) {
		s.log.V(1).Info("reverse record does not resolve back", "address", address.Hex(), "name", name, "forward", forward)
		return "", nil
	}
	return Normalize(name), nil
}

// ResolveName returns the verified primary name of address.
func (s *Service) ResolveName(ctx context.Context, address string) (string, error) {
	if !pcommon.IsValidAddress(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	addr := common.HexToAddress(address)
	return s.cached("name", addr.Hex(), func() (string, error) {
		return s.resolveName(ctx, addr)
	})
}

// ResolveAvatar returns the avatar text record of name, usually an URL or
// an NFT reference.
func (s *Service) ResolveAvatar(ctx context.Context, name string) (string, error) {
	name = Normalize(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	return s.cached("avatar", name, func() (string, error) {
		return s.text(ctx, name, AvatarKey)
	})
}

type Record struct {
	Name    string
	Address string
	Avatar  string
}

// Lookup accepts either a name or an address and fills in whatever else ENS
// knows about it. The avatar is fetched concurrently with the other lookup.
func (s *Service) Lookup(ctx context.Context, query string) (Record, error) {
	if pcommon.IsValidAddress(query) {
		rec := Record{Address: pcommon.ChecksumAddress(query)}
		name, err := s.ResolveName(ctx, query)
		if err != nil || name == "" {
			return rec, err
		}
		rec.Name = name
		rec.Avatar, err = s.ResolveAvatar(ctx, name)
		return rec, err
	}

	rec := Record{Name: Normalize(query)}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr, err := s.ResolveAddress(gctx, rec.Name)
		rec.Address = addr
		return err
	})
	g.Go(func() error {
		avatar, err := s.ResolveAvatar(gctx, rec.Name)
		rec.Avatar = avatar
		return err
	})
	if err := g.Wait(); err != nil {
		return rec, err
	}
	return rec, nil
}
