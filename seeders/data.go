package seeders

var categoriesData = []struct {
	Name        string
	Description string
}{
	{Name: "LAPTOP", Description: "Ноутбуки для сотрудников"},
	{Name: "MONITOR", Description: "Мониторы и дисплеи"},
	{Name: "PERIPHERAL", Description: "Клавиатуры, мыши, гарнитуры"},
	{Name: "PHONE", Description: "Служебные телефоны"},
	{Name: "FURNITURE", Description: "Кресла и столы"},
}

var demoAssetsData = []struct {
	Name         string
	AssetNumber  string
	CategoryName string
}{
	{Name: "Lenovo ThinkPad T14", AssetNumber: "LT-0001", CategoryName: "LAPTOP"},
	{Name: "Dell Latitude 5440", AssetNumber: "LT-0002", CategoryName: "LAPTOP"},
	{Name: "Dell P2422H", AssetNumber: "MN-0001", CategoryName: "MONITOR"},
	{Name: "Logitech MX Keys", AssetNumber: "PR-0001", CategoryName: "PERIPHERAL"},
	{Name: "iPhone 13", AssetNumber: "PH-0001", CategoryName: "PHONE"},
}
