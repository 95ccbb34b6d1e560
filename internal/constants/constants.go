package constants

// 用户角色常量
const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
)

// 收货地址常量
const (
	MaxAddressesPerUser = 5
	DefaultAddressTitle = "Default"
)

// 商品列表排序常量
const (
	ProductSortDefault   = "default"
	ProductSortAlphaAsc  = "alpha-asc"
	ProductSortAlphaDesc = "alpha-desc"
	ProductSortPriceAsc  = "price-asc"
	ProductSortPriceDesc = "price-desc"
	ProductSortDateAsc   = "date-asc"
	ProductSortDateDesc  = "date-desc"
)

// 商品展示数量常量
const (
	HomeProductLimit     = 8
	FeaturedProductLimit = 3
)

// 上传场景常量
const (
	UploadSceneProfilePicture = "profile_picture"
)
