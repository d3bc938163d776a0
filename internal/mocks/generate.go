package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/user --output domain/user --outpkg usermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name AccountAPI --dir ../usecase --output usecase --outpkg usecasemock --filename account_api_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SessionCache --dir ../usecase --output usecase --outpkg usecasemock --filename session_cache_mock.go
